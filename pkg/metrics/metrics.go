// Package metrics exposes the Prometheus collectors used by the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the Prometheus observability primitives of the service
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	quotationEvents *prometheus.CounterVec
	exportDuration  *prometheus.HistogramVec
}

// New registers and returns the service metrics on a dedicated registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotify_http_requests_total",
			Help: "Counts HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quotify_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quotationEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotify_quotation_events_total",
			Help: "Counts quotation lifecycle events (created, updated, finalized, deleted, exported).",
		}, []string{"event"}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quotify_export_duration_seconds",
			Help:    "Time spent rendering quotation exports by format.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.quotationEvents,
		m.exportDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records a finished HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// QuotationEvent counts a lifecycle event
func (m *Metrics) QuotationEvent(event string) {
	if m == nil {
		return
	}
	m.quotationEvents.WithLabelValues(event).Inc()
}

// ObserveExport records the rendering time of an export
func (m *Metrics) ObserveExport(format string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.exportDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}
