// Package podstatus provides a read-only view of a single Pod and the state
// of its containers.
package podstatus

import (
	"context"
	"sync"

	"github.com/giantswarm/microerror"
	"github.com/giantswarm/micrologger"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

type Config struct {
	K8sClient kubernetes.Interface
	Logger    micrologger.Logger
}

// View holds one Pod fetched from the Kubernetes API. The Pod is only
// changed by Load.
type View struct {
	k8sClient kubernetes.Interface
	logger    micrologger.Logger

	mutex      sync.RWMutex
	generation uint64
	closed     bool

	loadError bool
	name      string
	namespace string
	pod       *corev1.Pod
}

func New(config Config) (*View, error) {
	if config.K8sClient == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.K8sClient must not be empty", config)
	}
	if config.Logger == nil {
		return nil, microerror.Maskf(invalidConfigError, "%T.Logger must not be empty", config)
	}

	v := &View{
		k8sClient: config.K8sClient,
		logger:    config.Logger,
	}

	return v, nil
}

// Load fetches the Pod once. On success the Pod replaces the held one and
// the load error is cleared. On failure the Pod is dropped and the load
// error is set. Results arriving after Close are discarded.
func (v *View) Load(ctx context.Context, namespace, name string) {
	v.mutex.Lock()
	v.generation++
	generation := v.generation
	v.namespace = namespace
	v.name = name
	v.mutex.Unlock()

	v.logger.Debugf(ctx, "getting pod %#q in namespace %#q", name, namespace)

	pod, err := v.k8sClient.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})

	v.mutex.Lock()
	defer v.mutex.Unlock()

	if v.closed || generation != v.generation {
		v.logger.Debugf(ctx, "dropping stale result for pod %#q in namespace %#q", name, namespace)
		return
	}

	if err != nil {
		v.logger.Debugf(ctx, "failed to get pod %#q in namespace %#q: %s", name, namespace, err)
		v.pod = nil
		v.loadError = true
		return
	}

	v.pod = pod
	v.loadError = false

	v.logger.Debugf(ctx, "got pod %#q in namespace %#q", name, namespace)
}

// Close tears the view down. Loads still in flight are discarded.
func (v *View) Close() {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	v.closed = true
	v.generation++
}

func (v *View) LoadError() bool {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.loadError
}

func (v *View) Namespace() string {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return v.namespace
}

// Pod returns a copy of the held Pod or nil when none is held.
func (v *View) Pod() *corev1.Pod {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	if v.pod == nil {
		return nil
	}

	return v.pod.DeepCopy()
}

// ContainerStatus returns the status of the named container. Init
// containers are included. It returns nil when no Pod is held or no
// container has that name.
func (v *View) ContainerStatus(containerName string) *corev1.ContainerStatus {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return containerStatus(v.pod, containerName)
}

// ContainerState returns the lifecycle state of the named container or nil
// when its status is unknown.
func (v *View) ContainerState(containerName string) *State {
	return NewState(v.ContainerStatus(containerName))
}

func containerStatus(pod *corev1.Pod, containerName string) *corev1.ContainerStatus {
	if pod == nil {
		return nil
	}

	for _, statuses := range [][]corev1.ContainerStatus{pod.Status.ContainerStatuses, pod.Status.InitContainerStatuses} {
		for i := range statuses {
			if statuses[i].Name == containerName {
				return statuses[i].DeepCopy()
			}
		}
	}

	return nil
}
