package chartversions

type Request struct {
	ChartName string `json:"chart_name"`
}

type Response struct {
	ChartName string    `json:"chart_name"`
	Versions  []Version `json:"versions"`
}

type Version struct {
	Label   string `json:"label"`
	Version string `json:"version"`
}
