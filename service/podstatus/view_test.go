package podstatus

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/giantswarm/micrologger/microloggertest"
	"github.com/giantswarm/to"
	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

var startedAt = metav1.NewTime(time.Date(2020, 3, 4, 10, 0, 0, 0, time.UTC))

func newTestPod() *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "web-0",
			Namespace: "default",
		},
		Spec: corev1.PodSpec{
			InitContainers: []corev1.Container{
				{Name: "init", Image: "busybox"},
			},
			Containers: []corev1.Container{
				{Name: "app", Image: "nginx"},
				{Name: "sidecar", Image: "envoy"},
			},
			RestartPolicy: corev1.RestartPolicyOnFailure,
		},
		Status: corev1.PodStatus{
			Phase: corev1.PodRunning,
			InitContainerStatuses: []corev1.ContainerStatus{
				{
					Name: "init",
					State: corev1.ContainerState{
						Terminated: &corev1.ContainerStateTerminated{
							ExitCode:   0,
							Reason:     "Completed",
							StartedAt:  startedAt,
							FinishedAt: startedAt,
						},
					},
				},
			},
			ContainerStatuses: []corev1.ContainerStatus{
				{
					Name:         "app",
					Ready:        true,
					RestartCount: 2,
					Started:      to.BoolP(true),
					State: corev1.ContainerState{
						Running: &corev1.ContainerStateRunning{
							StartedAt: startedAt,
						},
					},
				},
				{
					Name: "sidecar",
					State: corev1.ContainerState{
						Waiting: &corev1.ContainerStateWaiting{
							Reason:  "ImagePullBackOff",
							Message: "Back-off pulling image",
						},
					},
				},
			},
		},
	}
}

func newTestView(t *testing.T, objs ...runtime.Object) (*View, *fake.Clientset) {
	k8sClient := fake.NewSimpleClientset(objs...)

	v, err := New(Config{
		K8sClient: k8sClient,
		Logger:    microloggertest.New(),
	})
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}

	return v, k8sClient
}

func Test_View_New(t *testing.T) {
	_, err := New(Config{Logger: microloggertest.New()})
	if !IsInvalidConfig(err) {
		t.Fatalf("error == %#v, want matching", err)
	}

	_, err = New(Config{K8sClient: fake.NewSimpleClientset()})
	if !IsInvalidConfig(err) {
		t.Fatalf("error == %#v, want matching", err)
	}
}

func Test_View_Load(t *testing.T) {
	v, _ := newTestView(t, newTestPod())

	v.Load(context.Background(), "default", "web-0")

	if v.LoadError() {
		t.Fatalf("expected no load error")
	}
	if v.Pod() == nil || v.Pod().Name != "web-0" {
		t.Fatalf("expected pod %#q to be held, got %#v", "web-0", v.Pod())
	}
	if v.Namespace() != "default" {
		t.Fatalf("expected namespace %#q, got %#q", "default", v.Namespace())
	}

	status := v.ContainerStatus("app")
	if status == nil || status.RestartCount != 2 {
		t.Fatalf("expected status of container %#q, got %#v", "app", status)
	}
	if v.ContainerStatus("missing") != nil {
		t.Fatalf("expected no status for unknown container")
	}
}

func Test_View_Load_Missing(t *testing.T) {
	v, _ := newTestView(t, newTestPod())

	v.Load(context.Background(), "default", "web-0")
	if v.Pod() == nil {
		t.Fatalf("expected pod to be held")
	}

	v.Load(context.Background(), "default", "missing-pod")

	if !v.LoadError() {
		t.Fatalf("expected load error")
	}
	if v.Pod() != nil {
		t.Fatalf("expected no pod, got %#v", v.Pod())
	}
	if v.ContainerStatus("app") != nil {
		t.Fatalf("expected no container status")
	}
	if v.ContainerState("app") != nil {
		t.Fatalf("expected no container state")
	}

	s := v.Summary()
	expected := Summary{
		Name:      "missing-pod",
		Namespace: "default",
		LoadError: true,
	}
	if !cmp.Equal(s, expected) {
		t.Fatalf("want matching summary \n %s", cmp.Diff(s, expected))
	}
}

func Test_View_Load_RecoversFromError(t *testing.T) {
	v, k8sClient := newTestView(t)

	v.Load(context.Background(), "default", "web-0")
	if !v.LoadError() {
		t.Fatalf("expected load error")
	}

	_, err := k8sClient.CoreV1().Pods("default").Create(context.Background(), newTestPod(), metav1.CreateOptions{})
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}

	v.Load(context.Background(), "default", "web-0")
	if v.LoadError() {
		t.Fatalf("expected load error to be cleared")
	}
	if v.Pod() == nil {
		t.Fatalf("expected pod to be held")
	}
}

func Test_View_Close(t *testing.T) {
	v, k8sClient := newTestView(t, newTestPod())

	release := make(chan struct{})
	started := make(chan struct{})
	k8sClient.PrependReactor("get", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		close(started)
		<-release
		return true, nil, apierrors.NewNotFound(schema.GroupResource{Resource: "pods"}, "web-0")
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		v.Load(context.Background(), "default", "web-0")
	}()

	<-started
	v.Close()
	close(release)
	<-done

	if v.LoadError() {
		t.Fatalf("expected result after close to be discarded")
	}
}

func Test_View_ContainerState(t *testing.T) {
	exitCode := int32(0)

	testCases := []struct {
		name          string
		containerName string
		expectedState *State
	}{
		{
			name:          "case 0: running container",
			containerName: "app",
			expectedState: &State{
				Label:     StateRunning,
				StartedAt: &startedAt,
			},
		},
		{
			name:          "case 1: waiting container",
			containerName: "sidecar",
			expectedState: &State{
				Label:   StateWaiting,
				Reason:  "ImagePullBackOff",
				Message: "Back-off pulling image",
			},
		},
		{
			name:          "case 2: terminated init container",
			containerName: "init",
			expectedState: &State{
				Label:      StateTerminated,
				Reason:     "Completed",
				ExitCode:   &exitCode,
				StartedAt:  &startedAt,
				FinishedAt: &startedAt,
			},
		},
		{
			name:          "case 3: unknown container",
			containerName: "missing",
			expectedState: nil,
		},
	}

	v, _ := newTestView(t, newTestPod())
	v.Load(context.Background(), "default", "web-0")

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			state := v.ContainerState(tc.containerName)
			if !cmp.Equal(state, tc.expectedState) {
				t.Fatalf("want matching state \n %s", cmp.Diff(state, tc.expectedState))
			}
		})
	}
}

func Test_NewState_Empty(t *testing.T) {
	state := NewState(&corev1.ContainerStatus{Name: "app"})

	expected := &State{Label: StateWaiting}
	if !cmp.Equal(state, expected) {
		t.Fatalf("want matching state \n %s", cmp.Diff(state, expected))
	}
}

func Test_RestartPolicyLabel(t *testing.T) {
	testCases := []struct {
		policy        corev1.RestartPolicy
		expectedLabel string
	}{
		{policy: corev1.RestartPolicyAlways, expectedLabel: "Always Restart"},
		{policy: corev1.RestartPolicyOnFailure, expectedLabel: "Restart On Failure"},
		{policy: corev1.RestartPolicyNever, expectedLabel: "Never Restart"},
		{policy: "", expectedLabel: UnknownRestartPolicyLabel},
		{policy: "Sometimes", expectedLabel: UnknownRestartPolicyLabel},
	}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			label := RestartPolicyLabel(tc.policy)
			if label != tc.expectedLabel {
				t.Fatalf("RestartPolicyLabel(%#q) = %#q, want %#q", tc.policy, label, tc.expectedLabel)
			}
		})
	}
}

func Test_View_Summary(t *testing.T) {
	v, _ := newTestView(t, newTestPod())
	v.Load(context.Background(), "default", "web-0")

	s := v.Summary()

	if s.Phase != corev1.PodRunning {
		t.Fatalf("expected phase %#q, got %#q", corev1.PodRunning, s.Phase)
	}
	if s.RestartPolicy != "Restart On Failure" {
		t.Fatalf("expected restart policy label %#q, got %#q", "Restart On Failure", s.RestartPolicy)
	}

	var names []string
	for _, c := range s.Containers {
		names = append(names, c.Name)
	}
	expectedNames := []string{"init", "app", "sidecar"}
	if !cmp.Equal(names, expectedNames) {
		t.Fatalf("want matching containers \n %s", cmp.Diff(names, expectedNames))
	}

	app := s.Containers[1]
	if !app.Ready || app.RestartCount != 2 || app.State == nil || app.State.Label != StateRunning {
		t.Fatalf("unexpected summary for container %#q: %#v", "app", app)
	}
	if !s.Containers[0].Init {
		t.Fatalf("expected container %#q to be an init container", "init")
	}
}
