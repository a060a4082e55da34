package podstatus

import (
	corev1 "k8s.io/api/core/v1"
)

// Summary is the serializable projection of a View.
type Summary struct {
	Name          string             `json:"name"`
	Namespace     string             `json:"namespace"`
	LoadError     bool               `json:"loadError"`
	Phase         corev1.PodPhase    `json:"phase,omitempty"`
	RestartPolicy string             `json:"restartPolicy,omitempty"`
	Containers    []ContainerSummary `json:"containers,omitempty"`
}

type ContainerSummary struct {
	Name         string `json:"name"`
	Image        string `json:"image"`
	Init         bool   `json:"init,omitempty"`
	Ready        bool   `json:"ready"`
	RestartCount int32  `json:"restartCount"`
	State        *State `json:"state,omitempty"`
}

func (v *View) Summary() Summary {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	s := Summary{
		Name:      v.name,
		Namespace: v.namespace,
		LoadError: v.loadError,
	}

	if v.pod == nil {
		return s
	}

	s.Phase = v.pod.Status.Phase
	s.RestartPolicy = RestartPolicyLabel(v.pod.Spec.RestartPolicy)

	for _, c := range v.pod.Spec.InitContainers {
		s.Containers = append(s.Containers, containerSummary(v.pod, c, true))
	}
	for _, c := range v.pod.Spec.Containers {
		s.Containers = append(s.Containers, containerSummary(v.pod, c, false))
	}

	return s
}

func containerSummary(pod *corev1.Pod, c corev1.Container, init bool) ContainerSummary {
	cs := ContainerSummary{
		Name:  c.Name,
		Image: c.Image,
		Init:  init,
	}

	status := containerStatus(pod, c.Name)
	if status != nil {
		cs.Ready = status.Ready
		cs.RestartCount = status.RestartCount
		cs.State = NewState(status)
	}

	return cs
}
