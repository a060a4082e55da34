package podstatus

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	StateRunning    = "running"
	StateTerminated = "terminated"
	StateWaiting    = "waiting"
)

// State is the coarse lifecycle state of a container.
type State struct {
	Label      string       `json:"label"`
	Reason     string       `json:"reason,omitempty"`
	Message    string       `json:"message,omitempty"`
	ExitCode   *int32       `json:"exitCode,omitempty"`
	StartedAt  *metav1.Time `json:"startedAt,omitempty"`
	FinishedAt *metav1.Time `json:"finishedAt,omitempty"`
}

// NewState derives the state from a container status. A status without
// any state set counts as waiting, which is the Kubernetes default.
func NewState(status *corev1.ContainerStatus) *State {
	if status == nil {
		return nil
	}

	s := status.State

	switch {
	case s.Terminated != nil:
		exitCode := s.Terminated.ExitCode
		startedAt := s.Terminated.StartedAt
		finishedAt := s.Terminated.FinishedAt

		return &State{
			Label:      StateTerminated,
			Reason:     s.Terminated.Reason,
			Message:    s.Terminated.Message,
			ExitCode:   &exitCode,
			StartedAt:  &startedAt,
			FinishedAt: &finishedAt,
		}
	case s.Running != nil:
		startedAt := s.Running.StartedAt

		return &State{
			Label:     StateRunning,
			StartedAt: &startedAt,
		}
	case s.Waiting != nil:
		return &State{
			Label:   StateWaiting,
			Reason:  s.Waiting.Reason,
			Message: s.Waiting.Message,
		}
	default:
		return &State{
			Label: StateWaiting,
		}
	}
}
