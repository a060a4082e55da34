package pod

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/giantswarm/k8sclient/v7/pkg/k8sclienttest"
	"github.com/giantswarm/micrologger/microloggertest"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/giantswarm/app-console/flag"
	"github.com/giantswarm/app-console/service"
	"github.com/giantswarm/app-console/service/podstatus"
)

func newTestEndpoint(t *testing.T) *Endpoint {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "web-0",
			Namespace: "default",
		},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{
				{Name: "app", Image: "nginx"},
			},
			RestartPolicy: corev1.RestartPolicyAlways,
		},
		Status: corev1.PodStatus{
			Phase: corev1.PodPending,
			ContainerStatuses: []corev1.ContainerStatus{
				{
					Name:         "app",
					RestartCount: 1,
					State: corev1.ContainerState{
						Waiting: &corev1.ContainerStateWaiting{
							Reason: "ContainerCreating",
						},
					},
				},
			},
		},
	}

	f := flag.New()
	v := viper.New()
	v.Set(f.Service.Console.Address, "https://console.example.com")
	v.Set(f.Service.Console.HTTP.ClientTimeout, "5s")

	s, err := service.New(service.Config{
		K8sClient: k8sclienttest.NewClients(k8sclienttest.ClientsConfig{
			K8sClient: fake.NewSimpleClientset(pod),
		}),
		Logger: microloggertest.New(),

		Flag:  f,
		Viper: v,
	})
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}

	e, err := New(Config{
		Logger:  microloggertest.New(),
		Service: s,
	})
	if err != nil {
		t.Fatalf("error == %#v, want nil", err)
	}

	return e
}

func Test_Endpoint(t *testing.T) {
	testCases := []struct {
		name             string
		request          Request
		expectedResponse interface{}
	}{
		{
			name: "case 0: pod summary",
			request: Request{
				Name:      "web-0",
				Namespace: "default",
			},
			expectedResponse: podstatus.Summary{
				Name:          "web-0",
				Namespace:     "default",
				Phase:         corev1.PodPending,
				RestartPolicy: "Always Restart",
				Containers: []podstatus.ContainerSummary{
					{
						Name:         "app",
						Image:        "nginx",
						RestartCount: 1,
						State: &podstatus.State{
							Label:  podstatus.StateWaiting,
							Reason: "ContainerCreating",
						},
					},
				},
			},
		},
		{
			name: "case 1: missing pod is reported as load error",
			request: Request{
				Name:      "web-1",
				Namespace: "default",
			},
			expectedResponse: podstatus.Summary{
				Name:      "web-1",
				Namespace: "default",
				LoadError: true,
			},
		},
	}

	e := newTestEndpoint(t)

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			response, err := e.Endpoint()(context.Background(), tc.request)
			if err != nil {
				t.Fatalf("error == %#v, want nil", err)
			}

			if !cmp.Equal(response, tc.expectedResponse) {
				t.Fatalf("want matching response \n %s", cmp.Diff(response, tc.expectedResponse))
			}
		})
	}
}

func Test_Decoder(t *testing.T) {
	testCases := []struct {
		name            string
		namespace       string
		podName         string
		expectedRequest interface{}
		errorMatcher    func(error) bool
	}{
		{
			name:      "case 0: namespace and name from path",
			namespace: "default",
			podName:   "web-0",
			expectedRequest: Request{
				Name:      "web-0",
				Namespace: "default",
			},
		},
		{
			name:         "case 1: missing namespace",
			podName:      "web-0",
			errorMatcher: IsDecodeFailed,
		},
		{
			name:         "case 2: missing name",
			namespace:    "default",
			errorMatcher: IsDecodeFailed,
		},
	}

	e := Endpoint{}

	for i, tc := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			t.Log(tc.name)

			ctx := context.WithValue(context.Background(), "pod_namespace", tc.namespace) // nolint:staticcheck
			ctx = context.WithValue(ctx, "pod_name", tc.podName)                          // nolint:staticcheck
			r := httptest.NewRequest(Method, "/pods/"+tc.namespace+"/"+tc.podName+"/", nil)

			request, err := e.Decoder()(ctx, r)
			switch {
			case err != nil && tc.errorMatcher == nil:
				t.Fatalf("error == %#v, want nil", err)
			case err == nil && tc.errorMatcher != nil:
				t.Fatalf("error == nil, want non-nil")
			case tc.errorMatcher != nil && !tc.errorMatcher(err):
				t.Fatalf("error == %#v, want matching", err)
			}
			if tc.errorMatcher != nil {
				return
			}

			if !cmp.Equal(request, tc.expectedRequest) {
				t.Fatalf("want matching request \n %s", cmp.Diff(request, tc.expectedRequest))
			}
		})
	}
}
