package eventsource

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	kitendpoint "github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/giantswarm/app-console/service"
	"github.com/giantswarm/app-console/service/eventsource"
)

const (
	// Method is the HTTP method this endpoint is register for.
	Method = "POST"
	// Name identifies the endpoint. It is aligned to the package path.
	Name = "eventsource/validator"
	// Path is the HTTP request path this endpoint is registered for.
	Path = "/eventsources/validation/"
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
		var request eventsource.FormValues

		defer r.Body.Close()
		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			return nil, microerror.Maskf(decodeFailedError, "%v", err.Error())
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
		request := r.(eventsource.FormValues)

		errs := e.service.ValidateEventSource(request)
		if !errs.Valid() {
			e.logger.Debugf(ctx, "event source %#q of type %#q failed validation: %s", request.Name, request.Type(), errs.String())
		}

		response := Response{
			Valid:  errs.Valid(),
			Errors: errs,
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
