package eventsource

type Response struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}
