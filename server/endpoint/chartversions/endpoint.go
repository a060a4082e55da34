package chartversions

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	kitendpoint "github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/giantswarm/app-console/pkg/formstate"
	"github.com/giantswarm/app-console/service"
)

const (
	// Method is the HTTP method this endpoint is register for.
	Method = "GET"
	// Name identifies the endpoint. It is aligned to the package path.
	Name = "chartversions/lister"
	// Path is the HTTP request path this endpoint is registered for.
	Path = "/charts/{chart_name}/versions/"
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
		name, _ := ctx.Value("chart_name").(string)
		if name == "" {
			return nil, microerror.Maskf(decodeFailedError, "chart name must not be empty")
		}

		request := Request{
			ChartName: name,
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

func (e Endpoint) Endpoint() kitendpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		request := r.(Request)

		resolver, err := e.service.NewChartVersionResolver(formstate.New())
		if err != nil {
			return nil, microerror.Mask(err)
		}
		defer resolver.Close()

		resolver.Load(ctx, request.ChartName)
		if !resolver.Loaded() {
			return nil, microerror.Maskf(indexUnavailableError, "chart index for chart %#q", request.ChartName)
		}

		labels := resolver.Versions()

		response := Response{
			ChartName: request.ChartName,
			Versions:  []Version{},
		}
		for _, v := range resolver.SortedVersions() {
			response.Versions = append(response.Versions, Version{
				Label:   labels[v],
				Version: v,
			})
		}

		return response, nil
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
