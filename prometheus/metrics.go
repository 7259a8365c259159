package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nexus"

// Counter metrics
var (
	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Registration counter
	RegisterCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_register_total",
			Help:      "Total number of user registrations",
		},
	)

	// Login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_login_total",
			Help:      "Total number of successful logins",
		},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_errors_total",
			Help:      "Total number of authentication errors",
		},
		[]string{"type"}, // missing_token, invalid_format, invalid_token, login_failure, duplicate_email
	)

	// Entity operation counter
	EntityOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_operations_total",
			Help:      "Total number of entity operations",
		},
		[]string{"entity", "operation"},
	)

	// Nudge outcomes
	NudgeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nudges_total",
			Help:      "Total number of nudges served by category",
		},
		[]string{"category"}, // ai, general, fallback
	)

	RateLimitedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_operation_duration_seconds",
			Help:      "Duration of database operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Text generation latency, including failures
	TextGenDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "textgen_duration_seconds",
			Help:      "Duration of text generation calls in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
		[]string{"outcome"},
	)
)

// Gauge metrics
var (
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "info",
			Help:      "Information about the service",
		},
		[]string{"version"},
	)

	// Per-user limiters currently held in memory
	RateLimitersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rate_limiters",
			Help:      "Number of per-user rate limiters currently tracked",
		},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RegisterCounter)
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(EntityOperationCounter)
	prometheus.MustRegister(NudgeCounter)
	prometheus.MustRegister(RateLimitedCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
	prometheus.MustRegister(TextGenDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)
	prometheus.MustRegister(RateLimitersGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation starts timing a database operation; call the returned
// function when it finishes:
//
//	defer prometheus.TrackDBOperation("task_list")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(startTime time.Time) {
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(time.Since(startTime).Seconds())
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordEntityOperation records a create/update/delete on an entity
func RecordEntityOperation(entity, operation string) {
	EntityOperationCounter.With(prometheus.Labels{"entity": entity, "operation": operation}).Inc()
}

// RecordNudge records which kind of nudge was served
func RecordNudge(category string) {
	NudgeCounter.With(prometheus.Labels{"category": category}).Inc()
}

// ObserveTextGen records the latency of one text generation call
func ObserveTextGen(outcome string, d time.Duration) {
	TextGenDuration.With(prometheus.Labels{"outcome": outcome}).Observe(d.Seconds())
}

// RecordRateLimited records a request rejected by the limiter on endpoint
func RecordRateLimited(endpoint string) {
	RateLimitedCounter.With(prometheus.Labels{"endpoint": endpoint}).Inc()
}
