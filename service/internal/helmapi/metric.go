package helmapi

import "github.com/prometheus/client_golang/prometheus"

const (
	PrometheusNamespace = "app_console"
	PrometheusSubsystem = "helmapi"
)

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: PrometheusNamespace,
			Subsystem: PrometheusSubsystem,
			Name:      "cache_hits_total",
			Help:      "Number of helm API responses served from the cache.",
		},
		[]string{"request"},
	)
	histogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: PrometheusNamespace,
			Subsystem: PrometheusSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Histogram for requests against the helm API of the console backend.",
		},
		[]string{"request", "status"},
	)
)

func init() {
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(histogram)
}
