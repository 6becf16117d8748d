package figma

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the client's request
// lifecycle and reliability layers. It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	retriesTotal *prometheus.CounterVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec

	deduplicationHits *prometheus.CounterVec

	rateLimitWaits *prometheus.CounterVec

	tokenRefreshes prometheus.Counter

	errorsTotal *prometheus.CounterVec
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "figdrift_api_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "figdrift_api_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "figdrift_api_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"method", "endpoint"},
		),
		cacheHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "figdrift_api_cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"endpoint"},
		),
		cacheMisses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "figdrift_api_cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"endpoint"},
		),
		deduplicationHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "figdrift_api_deduplication_hits_total",
				Help: "Total number of calls coalesced onto an in-flight request",
			},
			[]string{"endpoint"},
		),
		rateLimitWaits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "figdrift_api_rate_limit_waits_total",
				Help: "Total number of proactive rate-limit waits before sending",
			},
			[]string{"endpoint"},
		),
		tokenRefreshes: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "figdrift_api_token_refreshes_total",
				Help: "Total number of OAuth2 token refreshes",
			},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "figdrift_api_errors_total",
				Help: "Total number of terminal request errors by type",
			},
			[]string{"type", "endpoint"},
		),
	}
}

// RecordRequest records a completed request with its final status.
func (m *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode), endpoint).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRetry records one retry attempt.
func (m *MetricsCollector) RecordRetry(method, endpoint string) {
	if m == nil {
		return
	}

	m.retriesTotal.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheHit records a response served from cache.
func (m *MetricsCollector) RecordCacheHit(endpoint string) {
	if m == nil {
		return
	}

	m.cacheHits.WithLabelValues(endpoint).Inc()
}

// RecordCacheMiss records a cache miss.
func (m *MetricsCollector) RecordCacheMiss(endpoint string) {
	if m == nil {
		return
	}

	m.cacheMisses.WithLabelValues(endpoint).Inc()
}

// RecordDeduplicationHit records a call attached to an in-flight request.
func (m *MetricsCollector) RecordDeduplicationHit(endpoint string) {
	if m == nil {
		return
	}

	m.deduplicationHits.WithLabelValues(endpoint).Inc()
}

// RecordRateLimitWait records one proactive wait.
func (m *MetricsCollector) RecordRateLimitWait(endpoint string) {
	if m == nil {
		return
	}

	m.rateLimitWaits.WithLabelValues(endpoint).Inc()
}

// RecordTokenRefresh records one OAuth2 refresh-callback invocation.
func (m *MetricsCollector) RecordTokenRefresh() {
	if m == nil {
		return
	}

	m.tokenRefreshes.Inc()
}

// RecordError records a terminal error by classification.
func (m *MetricsCollector) RecordError(errType, endpoint string) {
	if m == nil {
		return
	}

	m.errorsTotal.WithLabelValues(errType, endpoint).Inc()
}
