package fastjs

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request pipeline.
// All methods are nil-safe so instrumentation points need no guards. The
// endpoint label is the URL template (pre-resolution) to keep cardinality
// bounded.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	hookVetoes         *prometheus.CounterVec
	debounceCoalesced  *prometheus.CounterVec
	resends            *prometheus.CounterVec
	callbackDispatches *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastjs_requests_total",
				Help: "Total number of HTTP requests dispatched",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fastjs_request_duration_seconds",
				Help:    "Duration of dispatched HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fastjs_requests_in_flight",
				Help: "Number of HTTP requests currently in the pipeline",
			},
			[]string{"method", "endpoint"},
		),
		hookVetoes: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastjs_hook_vetoes_total",
				Help: "Total number of pipeline interceptions by lifecycle hooks",
			},
			[]string{"hook", "method"},
		),
		debounceCoalesced: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastjs_debounce_coalesced_total",
				Help: "Total number of sends superseded within a debounce window",
			},
			[]string{"method", "endpoint"},
		),
		resends: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastjs_resends_total",
				Help: "Total number of caller-invoked request replays",
			},
			[]string{"method"},
		),
		callbackDispatches: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastjs_callbacks_dispatched_total",
				Help: "Total number of callback invocations by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fastjs_errors_total",
				Help: "Total number of pipeline failures by type",
			},
			[]string{"type", "method", "endpoint"},
		),
	}

	if r, ok := registry.(*prometheus.Registry); ok {
		mc.registry = r
	}

	return mc
}

// RecordRequest records request count and duration.
func (mc *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(method, statusCodeStr, endpoint).Inc()
	mc.requestDuration.WithLabelValues(method, statusCodeStr, endpoint).Observe(duration.Seconds())
}

// RecordRequestStart increments the in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd decrements the in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordHookVeto increments the veto counter for a lifecycle key.
func (mc *MetricsCollector) RecordHookVeto(hook, method string) {
	if mc == nil {
		return
	}

	mc.hookVetoes.WithLabelValues(hook, method).Inc()
}

// RecordDebounceCoalesced increments the superseded-send counter.
func (mc *MetricsCollector) RecordDebounceCoalesced(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.debounceCoalesced.WithLabelValues(method, endpoint).Inc()
}

// RecordResend increments the replay counter.
func (mc *MetricsCollector) RecordResend(method string) {
	if mc == nil {
		return
	}

	mc.resends.WithLabelValues(method).Inc()
}

// RecordCallbackDispatch increments the callback counter for an outcome
// ("success", "failed" or "finally").
func (mc *MetricsCollector) RecordCallbackDispatch(outcome string) {
	if mc == nil {
		return
	}

	mc.callbackDispatches.WithLabelValues(outcome).Inc()
}

// RecordError increments the error counter by type.
func (mc *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}

// GetRegistry exposes the underlying prometheus registry, or nil when the
// collector was built on a non-Registry registerer.
func (mc *MetricsCollector) GetRegistry() *prometheus.Registry {
	return mc.registry
}
