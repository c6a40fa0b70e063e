// Package metrics provides Prometheus metrics for the rosterpay service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus instruments for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Catalog metrics
	catalogRecords      prometheus.Gauge
	catalogLoadDuration prometheus.Histogram
	catalogLoadErrors   prometheus.Counter

	// Query metrics
	analysisRuns     *prometheus.CounterVec
	analysisErrors   *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	lookupMisses     prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// Global manager registered on a custom registry so the exposition
// carries only our own instruments.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // metrics must exist before any handler runs
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all instruments.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rosterpay",
		subsystem:        "catalog",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.catalogRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_total",
		Help:      "Number of records held by the catalog",
	})
	m.catalogLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_duration_milliseconds",
		Help:      "Histogram of bulk load duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})
	m.catalogLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "load_errors_total",
		Help:      "Total number of failed bulk loads",
	})

	m.analysisRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "analysis_runs_total",
		Help:      "Total number of analysis executions by name",
	}, []string{"analysis"})
	m.analysisErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "analysis_errors_total",
		Help:      "Total number of failed analysis executions by name",
	}, []string{"analysis"})
	m.analysisDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "analysis_duration_milliseconds",
		Help:      "Histogram of analysis duration in milliseconds by name",
		Buckets:   m.histogramBuckets,
	}, []string{"analysis"})
	m.lookupMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "query",
		Name:      "lookup_misses_total",
		Help:      "Total number of lookups for unknown player names",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Total number of HTTP error responses by endpoint and kind",
	}, []string{"endpoint", "kind"})
}

// GetRegistry returns the registry backing the global manager, for the
// exposition handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording against the global manager.

// UpdateCatalogRecords sets the catalog size gauge.
func UpdateCatalogRecords(n int) {
	globalManager.catalogRecords.Set(float64(n))
}

// RecordCatalogLoad observes a completed bulk load.
func RecordCatalogLoad(durationMs float64) {
	globalManager.catalogLoadDuration.Observe(durationMs)
}

// RecordCatalogLoadError counts a failed bulk load.
func RecordCatalogLoadError() {
	globalManager.catalogLoadErrors.Inc()
}

// RecordAnalysis counts one analysis execution and its duration.
func RecordAnalysis(name string, durationMs float64) {
	globalManager.analysisRuns.WithLabelValues(name).Inc()
	globalManager.analysisDuration.WithLabelValues(name).Observe(durationMs)
}

// RecordAnalysisError counts a failed analysis execution.
func RecordAnalysisError(name string) {
	globalManager.analysisErrors.WithLabelValues(name).Inc()
}

// RecordLookupMiss counts a lookup for an unknown name.
func RecordLookupMiss() {
	globalManager.lookupMisses.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes the duration of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordHTTPError counts an HTTP error response.
func RecordHTTPError(endpoint, kind string) {
	globalManager.httpErrors.WithLabelValues(endpoint, kind).Inc()
}
