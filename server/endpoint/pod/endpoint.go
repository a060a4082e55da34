package pod

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	kitendpoint "github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/giantswarm/app-console/service"
)

const (
	// Method is the HTTP method this endpoint is register for.
	Method = "GET"
	// Name identifies the endpoint. It is aligned to the package path.
	Name = "pod/getter"
	// Path is the HTTP request path this endpoint is registered for.
	Path = "/pods/{pod_namespace}/{pod_name}/"
)

type Config struct {
	Logger  micrologger.Logger
	Service *service.Service
}

type Endpoint struct {
	logger  micrologger.Logger
	service *service.Service
}

func New(config Config) (*Endpoint, error) {
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}
	if config.Service == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Service must not be empty", config)
	}

	e := &Endpoint{
		logger:  config.Logger,
		service: config.Service,
	}

	return e, nil
}

func (e Endpoint) Decoder() kithttp.DecodeRequestFunc {
	return func(ctx context.Context, r *http.Request) (interface{}, error) {
		namespace, _ := ctx.Value("pod_namespace").(string)
		name, _ := ctx.Value("pod_name").(string)

		if namespace == "" || name == "" {
			return nil, microerror.Maskf(decodeFailedError, "pod namespace and name must not be empty")
		}

		request := Request{
			Name:      name,
			Namespace: namespace,
		}

		return request, nil
	}
}

func (e Endpoint) Encoder() kithttp.EncodeResponseFunc {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		return json.NewEncoder(w).Encode(response)
	}
}

// Endpoint returns the pod summary. A pod that could not be loaded is
// reported through the loadError field of the summary, not as an error.
func (e Endpoint) Endpoint() kitendpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		request := r.(Request)

		view, err := e.service.NewPodStatusView()
		if err != nil {
			return nil, microerror.Mask(err)
		}
		defer view.Close()

		view.Load(ctx, request.Namespace, request.Name)

		return view.Summary(), nil
	}
}

func (e Endpoint) Method() string {
	return Method
}

func (e Endpoint) Middlewares() []kitendpoint.Middleware {
	return []kitendpoint.Middleware{}
}

func (e Endpoint) Name() string {
	return Name
}

func (e Endpoint) Path() string {
	return Path
}
