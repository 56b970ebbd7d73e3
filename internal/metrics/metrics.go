// Package metrics exposes Prometheus instrumentation for the API server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	ResponseCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"}, // hit | miss | error
	)

	ResponseCacheBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "response_cache_breaker_state",
			Help: "Response cache circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_records",
			Help: "Number of records loaded per resource",
		},
		[]string{"resource"},
	)
)

// RecordAPIRequest records one completed request.
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordCacheLookup(result string) {
	ResponseCacheLookups.WithLabelValues(result).Inc()
}

func SetCacheBreakerState(state float64) {
	ResponseCacheBreakerState.Set(state)
}

// SetDatasetSize publishes the size of each loaded collection.
func SetDatasetSize(characters, episodes, quotes int) {
	DatasetRecords.WithLabelValues("characters").Set(float64(characters))
	DatasetRecords.WithLabelValues("episodes").Set(float64(episodes))
	DatasetRecords.WithLabelValues("quotes").Set(float64(quotes))
}
