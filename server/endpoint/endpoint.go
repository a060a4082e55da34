package endpoint

import (
	"github.com/giantswarm/microendpoint/endpoint/version"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"

	"github.com/giantswarm/app-console/server/endpoint/chartselection"
	"github.com/giantswarm/app-console/server/endpoint/chartversions"
	"github.com/giantswarm/app-console/server/endpoint/eventsource"
	"github.com/giantswarm/app-console/server/endpoint/pod"
	"github.com/giantswarm/app-console/service"
)

// Config represents the configuration used to construct an endpoint.
type Config struct {
	// Dependencies
	Logger  micrologger.Logger
	Service *service.Service
}

// Endpoint is the endpoint collection.
type Endpoint struct {
	ChartSelection *chartselection.Endpoint
	ChartVersions  *chartversions.Endpoint
	EventSource    *eventsource.Endpoint
	Pod            *pod.Endpoint
	Version        *version.Endpoint
}

// New creates a new endpoint with given configuration.
func New(config Config) (*Endpoint, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Service == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Service must not be empty", config)
	}

	var err error

	var chartSelectionEndpoint *chartselection.Endpoint
	{
		c := chartselection.Config{
			Logger:  config.Logger,
			Service: config.Service,
		}

		chartSelectionEndpoint, err = chartselection.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var chartVersionsEndpoint *chartversions.Endpoint
	{
		c := chartversions.Config{
			Logger:  config.Logger,
			Service: config.Service,
		}

		chartVersionsEndpoint, err = chartversions.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var eventSourceEndpoint *eventsource.Endpoint
	{
		c := eventsource.Config{
			Logger:  config.Logger,
			Service: config.Service,
		}

		eventSourceEndpoint, err = eventsource.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var podEndpoint *pod.Endpoint
	{
		c := pod.Config{
			Logger:  config.Logger,
			Service: config.Service,
		}

		podEndpoint, err = pod.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var versionEndpoint *version.Endpoint
	{
		c := version.Config{
			Logger:  config.Logger,
			Service: config.Service.Version,
		}

		versionEndpoint, err = version.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	e := &Endpoint{
		ChartSelection: chartSelectionEndpoint,
		ChartVersions:  chartVersionsEndpoint,
		EventSource:    eventSourceEndpoint,
		Pod:            podEndpoint,
		Version:        versionEndpoint,
	}

	return e, nil
}
