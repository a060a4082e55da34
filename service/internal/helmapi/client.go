package helmapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	gocache "github.com/patrickmn/go-cache"
	"sigs.k8s.io/yaml"
)

const (
	chartPath = "/api/helm/chart"
	indexPath = "/api/helm/charts/index.yaml"

	requestChart = "chart"
	requestIndex = "index"
)

type Config struct {
	Logger micrologger.Logger

	// Address is the base URL of the console backend serving the helm API.
	Address string
	// CacheExpiration is the lifetime of cached responses. Caching is
	// disabled when it is zero.
	CacheExpiration   time.Duration
	HTTPClientTimeout time.Duration
}

type Client struct {
	// Dependencies.
	cache      *gocache.Cache
	httpClient *http.Client
	logger     micrologger.Logger

	// Settings.
	address string
}

func New(config Config) (*Client, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	if config.Address == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Address must not be empty", config)
	}
	if config.HTTPClientTimeout == 0 {
		return nil, microerror.Maskf(invalidConfigError, "%T.HTTPClientTimeout must not be empty", config)
	}

	u, err := url.Parse(config.Address)
	if err != nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Address must be a valid URL: %s", config, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, microerror.Maskf(invalidConfigError, "%T.Address must be an absolute URL, got %#q", config, config.Address)
	}

	var cache *gocache.Cache
	if config.CacheExpiration > 0 {
		cache = gocache.New(config.CacheExpiration, config.CacheExpiration/2)
	}

	c := &Client{
		cache: cache,
		httpClient: &http.Client{
			Timeout: config.HTTPClientTimeout,
		},
		logger: config.Logger,

		address: strings.TrimRight(config.Address, "/"),
	}

	return c, nil
}

func (c *Client) GetIndex(ctx context.Context) (*Index, error) {
	k := c.address + indexPath

	if v, ok := c.getCached(requestIndex, k); ok {
		i, ok := v.(Index)
		if !ok {
			return nil, microerror.Maskf(wrongTypeError, "expected '%T', got '%T'", Index{}, v)
		}

		return &i, nil
	}

	body, err := c.get(ctx, requestIndex, k)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	var i Index
	err = yaml.Unmarshal(body, &i)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	c.setCached(k, i)

	return &i, nil
}

func (c *Client) GetChart(ctx context.Context, chartURL string) (*Chart, error) {
	k := fmt.Sprintf("%s%s?%s", c.address, chartPath, url.Values{"url": []string{chartURL}}.Encode())

	if v, ok := c.getCached(requestChart, k); ok {
		ch, ok := v.(Chart)
		if !ok {
			return nil, microerror.Maskf(wrongTypeError, "expected '%T', got '%T'", Chart{}, v)
		}

		return &ch, nil
	}

	body, err := c.get(ctx, requestChart, k)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	var ch Chart
	err = json.Unmarshal(body, &ch)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	c.setCached(k, ch)

	return &ch, nil
}

func (c *Client) get(ctx context.Context, request, u string) ([]byte, error) {
	c.logger.Debugf(ctx, "requesting %#q", u)

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		histogram.WithLabelValues(request, "error").Observe(time.Since(start).Seconds())
		return nil, microerror.Mask(err)
	}
	defer resp.Body.Close()

	histogram.WithLabelValues(request, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, microerror.Maskf(executionFailedError, "expected status code 2xx for %#q, got %d", u, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	c.logger.Debugf(ctx, "requested %#q", u)

	return body, nil
}

func (c *Client) getCached(request, k string) (interface{}, bool) {
	if c.cache == nil {
		return nil, false
	}

	v, ok := c.cache.Get(k)
	if ok {
		cacheHits.WithLabelValues(request).Inc()
	}

	return v, ok
}

func (c *Client) setCached(k string, v interface{}) {
	if c.cache == nil {
		return
	}

	c.cache.SetDefault(k, v)
}
