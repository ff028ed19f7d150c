package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
		[]string{"service"},
	)

	// Business metrics
	LoadedDriversGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "loaded_drivers_total",
			Help: "Current number of drivers with session history loaded",
		},
		[]string{"service"},
	)

	ScoreComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_computations_total",
			Help: "Total number of steadiness score computations",
		},
		[]string{"service", "operation", "outcome"},
	)

	ScoreComputationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "score_computation_duration_seconds",
			Help:    "Steadiness score computation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	PercentileCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "percentile_cache_hits_total",
			Help: "Total number of percentile cohort cache hits",
		},
		[]string{"service"},
	)

	PercentileCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "percentile_cache_misses_total",
			Help: "Total number of percentile cohort cache misses",
		},
		[]string{"service"},
	)

	PercentileCacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "percentile_cache_invalidations_total",
			Help: "Total number of percentile cohort cache invalidations",
		},
		[]string{"service"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(service, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HttpRequestsTotal.WithLabelValues(service, method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(service, method, path, status).Observe(duration.Seconds())
}

// RecordScoreComputation records engine computation metrics
func RecordScoreComputation(service, operation string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	ScoreComputationsTotal.WithLabelValues(service, operation, outcome).Inc()
	ScoreComputationDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}
