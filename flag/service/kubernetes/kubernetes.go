package kubernetes

import (
	"github.com/giantswarm/app-console/flag/service/kubernetes/tls"
)

// Kubernetes is a data structure to hold Kubernetes specific command line
// configuration flags.
type Kubernetes struct {
	Address    string
	InCluster  string
	KubeConfig string
	TLS        tls.TLS
}
