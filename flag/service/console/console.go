package console

// Console is a data structure to hold the configuration of the console
// backend serving the helm API.
type Console struct {
	Address string
	Cache   Cache
	Chart   Chart
	HTTP    HTTP
}

type Cache struct {
	Expiration string
}

type Chart struct {
	Name string
}

type HTTP struct {
	ClientTimeout string
}
