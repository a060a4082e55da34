package helmapi

import "context"

type Interface interface {
	// GetIndex returns the chart repository index served by the console
	// backend.
	GetIndex(ctx context.Context) (*Index, error)
	// GetChart returns the chart stored at the given artifact URL including
	// its default values.
	GetChart(ctx context.Context, chartURL string) (*Chart, error)
}
