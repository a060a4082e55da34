package service

import (
	"github.com/giantswarm/app-console/flag/service/console"
	"github.com/giantswarm/app-console/flag/service/kubernetes"
)

// Service is an intermediate data structure for command line configuration flags.
type Service struct {
	Console    console.Console
	Kubernetes kubernetes.Kubernetes
}
