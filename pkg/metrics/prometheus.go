// Package metrics provides Prometheus metrics for the eventboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the eventboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Store and classification
	eventsLoaded      prometheus.Gauge
	partitionSize     *prometheus.GaugeVec
	snapshotRefreshes *prometheus.CounterVec

	// Rendering
	renders          *prometheus.CounterVec
	placeholders     *prometheus.CounterVec
	renderLatency    *prometheus.HistogramVec
	dispatchOutcomes *prometheus.CounterVec

	// Exports
	icsExports prometheus.Counter

	// System
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegisterer(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "eventboard",
		subsystem:        "site",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for all metric definitions
	auto := promauto.With(m.registry)

	m.eventsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_loaded",
		Help:        "Number of event records in the loaded store",
		ConstLabels: m.constLabels,
	})

	m.partitionSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "partition_size",
		Help:        "Number of events per partition in the current snapshot",
		ConstLabels: m.constLabels,
	}, []string{"partition"})

	m.snapshotRefreshes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_refreshes_total",
		Help:        "Snapshot rebuilds by trigger",
		ConstLabels: m.constLabels,
	}, []string{"trigger"})

	m.renders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "renders_total",
		Help:        "View renders by view kind",
		ConstLabels: m.constLabels,
	}, []string{"view"})

	m.placeholders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "placeholders_total",
		Help:        "Empty-partition placeholders rendered by view kind",
		ConstLabels: m.constLabels,
	}, []string{"view"})

	m.renderLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_latency_milliseconds",
		Help:        "View render latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"view"})

	m.dispatchOutcomes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dispatch_total",
		Help:        "Page dispatch outcomes by mode",
		ConstLabels: m.constLabels,
	}, []string{"mode"})

	m.icsExports = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ics_exports_total",
		Help:        "Number of iCalendar feeds served",
		ConstLabels: m.constLabels,
	})

	m.systemMemory = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Heap bytes allocated by the process",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutines = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Number of live goroutines",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})
}

// UpdateEventsLoaded sets the number of records in the store.
func UpdateEventsLoaded(count int) {
	globalManager.eventsLoaded.Set(float64(count))
}

// UpdatePartitionSizes sets the upcoming and past gauges.
func UpdatePartitionSizes(upcoming, past int) {
	globalManager.partitionSize.WithLabelValues("upcoming").Set(float64(upcoming))
	globalManager.partitionSize.WithLabelValues("past").Set(float64(past))
}

// RecordSnapshotRefresh counts a snapshot rebuild; trigger is "cron", "rollover" or "start".
func RecordSnapshotRefresh(trigger string) {
	globalManager.snapshotRefreshes.WithLabelValues(trigger).Inc()
}

// RecordRender counts a view render and observes its latency.
func RecordRender(view string, latencyMs float64) {
	globalManager.renders.WithLabelValues(view).Inc()
	globalManager.renderLatency.WithLabelValues(view).Observe(latencyMs)
}

// RecordPlaceholder counts an empty-partition placeholder.
func RecordPlaceholder(view string) {
	globalManager.placeholders.WithLabelValues(view).Inc()
}

// RecordDispatch counts a page dispatch outcome.
func RecordDispatch(mode string) {
	globalManager.dispatchOutcomes.WithLabelValues(mode).Inc()
}

// RecordICSExport counts a served calendar feed.
func RecordICSExport() {
	globalManager.icsExports.Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemory.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutines.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
