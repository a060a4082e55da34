package service

import (
	"context"
	"sync"

	"github.com/giantswarm/k8sclient/v7/pkg/k8sclient"
	"github.com/giantswarm/microendpoint/service/version"
	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	"github.com/spf13/viper"

	"github.com/giantswarm/app-console/flag"
	"github.com/giantswarm/app-console/pkg/formstate"
	"github.com/giantswarm/app-console/pkg/project"
	"github.com/giantswarm/app-console/service/chartversion"
	"github.com/giantswarm/app-console/service/eventsource"
	"github.com/giantswarm/app-console/service/internal/helmapi"
	"github.com/giantswarm/app-console/service/podstatus"
)

// Config represents the configuration used to create a new service.
type Config struct {
	K8sClient k8sclient.Interface
	Logger    micrologger.Logger

	Flag  *flag.Flag
	Viper *viper.Viper
}

// Service is a type providing implementation of microkit service interface.
type Service struct {
	Version *version.Service

	// Dependencies.
	helmClient helmapi.Interface
	k8sClient  k8sclient.Interface
	logger     micrologger.Logger

	// Internals.
	bootOnce sync.Once

	// Settings.
	chartName string
}

// New creates a new service with given configuration.
func New(config Config) (*Service, error) {
	if config.K8sClient == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.K8sClient must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	if config.Flag == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Flag must not be empty", config)
	}
	if config.Viper == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Viper must not be empty", config)
	}

	var err error

	var helmClient *helmapi.Client
	{
		c := helmapi.Config{
			Logger: config.Logger,

			Address:           config.Viper.GetString(config.Flag.Service.Console.Address),
			CacheExpiration:   config.Viper.GetDuration(config.Flag.Service.Console.Cache.Expiration),
			HTTPClientTimeout: config.Viper.GetDuration(config.Flag.Service.Console.HTTP.ClientTimeout),
		}

		helmClient, err = helmapi.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	var versionService *version.Service
	{
		c := version.Config{
			Description: project.Description(),
			GitCommit:   project.GitSHA(),
			Name:        project.Name(),
			Source:      project.Source(),
			Version:     project.Version(),
		}

		versionService, err = version.New(c)
		if err != nil {
			return nil, microerror.Mask(err)
		}
	}

	newService := &Service{
		Version: versionService,

		helmClient: helmClient,
		k8sClient:  config.K8sClient,
		logger:     config.Logger,

		bootOnce: sync.Once{},

		chartName: config.Viper.GetString(config.Flag.Service.Console.Chart.Name),
	}

	return newService, nil
}

// Boot warms the chart index cache for the configured chart. A failing
// request only leaves the cache cold.
func (s *Service) Boot(ctx context.Context) {
	s.bootOnce.Do(func() {
		if s.chartName == "" {
			return
		}

		r, err := s.NewChartVersionResolver(formstate.New())
		if err != nil {
			s.logger.Errorf(ctx, err, "failed to create chart version resolver")
			return
		}
		defer r.Close()

		r.Load(ctx, s.chartName)

		s.logger.Debugf(ctx, "found %d versions of chart %#q", len(r.Versions()), s.chartName)
	})
}

// NewChartVersionResolver returns a resolver publishing into form. Callers
// close it once the form is gone.
func (s *Service) NewChartVersionResolver(form chartversion.FieldSetter) (*chartversion.Resolver, error) {
	c := chartversion.Config{
		Client: s.helmClient,
		Form:   form,
		Logger: s.logger,
	}

	r, err := chartversion.New(c)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return r, nil
}

func (s *Service) NewPodStatusView() (*podstatus.View, error) {
	c := podstatus.Config{
		K8sClient: s.k8sClient.K8sClient(),
		Logger:    s.logger,
	}

	v, err := podstatus.New(c)
	if err != nil {
		return nil, microerror.Mask(err)
	}

	return v, nil
}

func (s *Service) ValidateEventSource(values eventsource.FormValues) eventsource.FieldErrors {
	return eventsource.Validate(values)
}
