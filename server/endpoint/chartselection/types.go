package chartselection

type Request struct {
	ChartName string `json:"chart_name"`
	Version   string `json:"version"`
}

// Response carries the form fields published by the selection.
// ChartValuesPublished is false when fetching the values failed. A published
// null ChartValuesYAML means the chart has no default values.
type Response struct {
	ChartVersion         string  `json:"chartVersion"`
	HelmChartURL         string  `json:"helmChartURL"`
	ChartValuesPublished bool    `json:"chartValuesPublished"`
	ChartValuesYAML      *string `json:"chartValuesYAML"`
}
