package project

var (
	description = "The app-console serves chart, event source and pod views for the Kubernetes console."
	gitSHA      = "n/a"
	name        = "app-console"
	source      = "https://github.com/giantswarm/app-console"
	version     = "0.1.0"
)

func Description() string {
	return description
}

func GitSHA() string {
	return gitSHA
}

func Name() string {
	return name
}

func Source() string {
	return source
}

func Version() string {
	return version
}
