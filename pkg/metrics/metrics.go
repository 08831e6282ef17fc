package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FormatRequests counts formatting requests by the path that produced the items
	FormatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_format_requests_total",
			Help: "Total number of minutes formatting requests",
		},
		[]string{"source"}, // source: remote, local, cache
	)

	// FormatFallbacks counts remote failures that fell back to the local rules
	FormatFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minutes_format_fallbacks_total",
			Help: "Total number of fallbacks from the remote formatter",
		},
		[]string{"reason"}, // reason: remote_call, schema, disabled
	)

	// RemoteCallLatency is the completion endpoint latency in milliseconds
	RemoteCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minutes_remote_call_latency_ms",
			Help:    "Completion endpoint latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 11), // 100ms to ~100s
		},
		[]string{"model", "status"},
	)

	// FormatItems is the number of items produced per request
	FormatItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minutes_format_items",
			Help:    "Number of minute items produced per formatting request",
			Buckets: []float64{1, 2, 3, 5, 8, 10, 15, 20},
		},
		[]string{"source"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

func IncrementFormatRequest(source string) {
	FormatRequests.WithLabelValues(source).Inc()
}

func IncrementFormatFallback(reason string) {
	FormatFallbacks.WithLabelValues(reason).Inc()
}

// RecordRemoteCallLatency records one completion call
func RecordRemoteCallLatency(model, status string, duration time.Duration) {
	RemoteCallLatency.WithLabelValues(model, status).Observe(float64(duration.Milliseconds()))
}

func ObserveFormatItems(source string, n int) {
	FormatItems.WithLabelValues(source).Observe(float64(n))
}

// RecordHTTPRequest records one HTTP request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
