package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockanalyzer_runs_total",
			Help: "Total number of analysis runs",
		},
		[]string{"status"}, // status: success|error
	)

	NodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockanalyzer_node_duration_seconds",
			Help:    "Graph node execution duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
		[]string{"node"},
	)

	FetchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockanalyzer_fetch_requests_total",
			Help: "Total number of market/news data requests",
		},
		[]string{"provider", "endpoint", "status"}, // status: success|error
	)
)

func init() {
	prometheus.MustRegister(Runs, NodeDuration, FetchRequests)
}

func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func RecordRun(err error) {
	Runs.WithLabelValues(Status(err)).Inc()
}

func ObserveNode(node string, start time.Time) {
	NodeDuration.WithLabelValues(node).Observe(time.Since(start).Seconds())
}

func RecordFetch(provider, endpoint string, err error) {
	FetchRequests.WithLabelValues(provider, endpoint, Status(err)).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
