package helmapitest

import (
	"context"
	"sync"

	"github.com/giantswarm/app-console/service/internal/helmapi"
)

type Config struct {
	GetChartError     error
	GetChartResponses map[string]*helmapi.Chart
	GetIndexError     error
	GetIndexResponse  *helmapi.Index

	// BeforeGetIndex is called before GetIndex returns. Tests use it to
	// block a request until a later one has completed.
	BeforeGetIndex func(ctx context.Context, call int)
	// BeforeGetChart is called before GetChart returns.
	BeforeGetChart func(ctx context.Context, chartURL string)
}

type Client struct {
	getChartError     error
	getChartResponses map[string]*helmapi.Chart
	getIndexError     error
	getIndexResponse  *helmapi.Index

	beforeGetChart func(ctx context.Context, chartURL string)
	beforeGetIndex func(ctx context.Context, call int)

	mutex         sync.Mutex
	chartRequests []string
	indexRequests int
}

func New(config Config) *Client {
	c := &Client{
		getChartError:     config.GetChartError,
		getChartResponses: config.GetChartResponses,
		getIndexError:     config.GetIndexError,
		getIndexResponse:  config.GetIndexResponse,

		beforeGetChart: config.BeforeGetChart,
		beforeGetIndex: config.BeforeGetIndex,
	}

	return c
}

func (c *Client) GetIndex(ctx context.Context) (*helmapi.Index, error) {
	c.mutex.Lock()
	c.indexRequests++
	call := c.indexRequests
	c.mutex.Unlock()

	if c.beforeGetIndex != nil {
		c.beforeGetIndex(ctx, call)
	}

	if c.getIndexError != nil {
		return nil, c.getIndexError
	}
	if c.getIndexResponse != nil {
		return c.getIndexResponse, nil
	}

	return &helmapi.Index{}, nil
}

func (c *Client) GetChart(ctx context.Context, chartURL string) (*helmapi.Chart, error) {
	c.mutex.Lock()
	c.chartRequests = append(c.chartRequests, chartURL)
	c.mutex.Unlock()

	if c.beforeGetChart != nil {
		c.beforeGetChart(ctx, chartURL)
	}

	if c.getChartError != nil {
		return nil, c.getChartError
	}
	if ch, ok := c.getChartResponses[chartURL]; ok {
		return ch, nil
	}

	return &helmapi.Chart{}, nil
}

// ChartRequests returns the artifact URLs GetChart was called with.
func (c *Client) ChartRequests() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]string(nil), c.chartRequests...)
}

// IndexRequests returns how often GetIndex was called.
func (c *Client) IndexRequests() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.indexRequests
}
