package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/giantswarm/microerror"
	microserver "github.com/giantswarm/microkit/server"
	"github.com/giantswarm/micrologger"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/spf13/viper"

	"github.com/giantswarm/app-console/pkg/project"
	"github.com/giantswarm/app-console/server/endpoint"
	"github.com/giantswarm/app-console/server/endpoint/chartselection"
	"github.com/giantswarm/app-console/server/endpoint/chartversions"
	"github.com/giantswarm/app-console/server/endpoint/eventsource"
	"github.com/giantswarm/app-console/server/endpoint/pod"
	"github.com/giantswarm/app-console/service"
)

// Config represents the configuration used to construct server object.
type Config struct {
	Logger  micrologger.Logger
	Service *service.Service

	Viper *viper.Viper
}

// New creates a new server object with given configuration.
func New(config Config) (microserver.Server, error) {
	var err error

	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Service == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Service must not be empty", config)
	}

	if config.Viper == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Viper must not be empty", config)
	}

	var endpointCollection *endpoint.Endpoint
	{
		c := endpoint.Config{
			Logger:  config.Logger,
			Service: config.Service,
		}

		endpointCollection, err = endpoint.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	newServer := &server{
		// Dependencies
		logger: config.Logger,

		// Internals
		bootOnce: sync.Once{},
		config: microserver.Config{
			Logger:      config.Logger,
			ServiceName: project.Name(),
			Viper:       config.Viper,
			Endpoints: []microserver.Endpoint{
				endpointCollection.ChartSelection,
				endpointCollection.ChartVersions,
				endpointCollection.EventSource,
				endpointCollection.Pod,
				endpointCollection.Version,
			},
			ErrorEncoder: errorEncoder,
			RequestFuncs: newRequestFuncs(),
		},
		shutdownOnce: sync.Once{},
	}

	return newServer, nil
}

type server struct {
	// Dependencies
	logger micrologger.Logger

	// Internals
	bootOnce     sync.Once
	config       microserver.Config
	shutdownOnce sync.Once
}

func (s *server) Boot() {
	s.bootOnce.Do(func() {
		// Insert here custom boot logic for server/endpoint/middleware if needed.
	})
}

func (s *server) Config() microserver.Config {
	return s.config
}

func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		// Insert here custom shutdown logic for server/endpoint/middleware if needed.
	})
}

func errorEncoder(ctx context.Context, err error, w http.ResponseWriter) {
	rErr := err.(microserver.ResponseError)
	uErr := rErr.Underlying()

	rErr.SetMessage(uErr.Error())

	switch {
	case isDecodeFailed(uErr):
		rErr.SetCode(microserver.CodeInvalidInput)
		w.WriteHeader(http.StatusBadRequest)
	case chartselection.IsVersionNotFound(uErr):
		rErr.SetCode(microserver.CodeResourceNotFound)
		w.WriteHeader(http.StatusNotFound)
	case chartselection.IsIndexUnavailable(uErr) || chartversions.IsIndexUnavailable(uErr):
		rErr.SetCode(microserver.CodeNotYetAvailable)
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		rErr.SetCode(microserver.CodeInternalError)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func isDecodeFailed(err error) bool {
	return chartselection.IsDecodeFailed(err) ||
		chartversions.IsDecodeFailed(err) ||
		eventsource.IsDecodeFailed(err) ||
		pod.IsDecodeFailed(err)
}

func newRequestFuncs() []kithttp.RequestFunc {
	return []kithttp.RequestFunc{
		// This request function puts the chart name URL parameter into the
		// request context, if any.
		func(ctx context.Context, r *http.Request) context.Context {
			return context.WithValue(ctx, "chart_name", mux.Vars(r)["chart_name"])
		},
		// This request function puts the pod namespace URL parameter into the
		// request context, if any.
		func(ctx context.Context, r *http.Request) context.Context {
			return context.WithValue(ctx, "pod_namespace", mux.Vars(r)["pod_namespace"])
		},
		// This request function puts the pod name URL parameter into the
		// request context, if any.
		func(ctx context.Context, r *http.Request) context.Context {
			return context.WithValue(ctx, "pod_name", mux.Vars(r)["pod_name"])
		},
	}
}
