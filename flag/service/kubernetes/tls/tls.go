package tls

type TLS struct {
	CAFile  string
	CrtFile string
	KeyFile string
}
