package podstatus

import (
	corev1 "k8s.io/api/core/v1"
)

// UnknownRestartPolicyLabel is returned for restart policies without a
// label.
const UnknownRestartPolicyLabel = "Unknown"

var restartPolicyLabels = map[corev1.RestartPolicy]string{
	corev1.RestartPolicyAlways:    "Always Restart",
	corev1.RestartPolicyOnFailure: "Restart On Failure",
	corev1.RestartPolicyNever:     "Never Restart",
}

func RestartPolicyLabel(policy corev1.RestartPolicy) string {
	l, ok := restartPolicyLabels[policy]
	if !ok {
		return UnknownRestartPolicyLabel
	}

	return l
}
