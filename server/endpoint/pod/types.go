package pod

type Request struct {
	Name      string `json:"pod_name"`
	Namespace string `json:"pod_namespace"`
}
