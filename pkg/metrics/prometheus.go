// Package metrics provides Prometheus metrics for the enrollment admin service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Reconciliation metrics
	filesProcessed   *prometheus.CounterVec
	rowsDecoded      prometheus.Counter
	changeRecords    *prometheus.CounterVec
	batchFailures    *prometheus.CounterVec
	reconcileLatency prometheus.Histogram

	// Store metrics
	employeesTracked prometheus.Gauge
	bulkOpsApplied   *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "magicpill",
		subsystem:        "admin",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesProcessed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "files_processed_total",
			Help:      "Total number of uploaded files processed, by outcome",
		},
		[]string{"outcome"},
	)

	m.rowsDecoded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_decoded_total",
		Help:      "Total number of rows decoded from uploaded files",
	})

	m.changeRecords = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "change_records_total",
			Help:      "Total number of change records emitted, by action",
		},
		[]string{"action"},
	)

	m.batchFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "batch_failures_total",
			Help:      "Total number of batches rejected, by error kind",
		},
		[]string{"kind"},
	)

	m.reconcileLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconcile_latency_milliseconds",
		Help:      "Histogram of end-to-end file reconciliation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.employeesTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "employees_tracked",
		Help:      "Current number of employee records in the store",
	})

	m.bulkOpsApplied = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "bulk_operations_applied_total",
			Help:      "Total number of approved bulk operations applied, by action",
		},
		[]string{"action"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// Package-level helpers operating on the global manager.

// RecordFileProcessed records a processed upload and its outcome ("ok" or "failed").
func RecordFileProcessed(outcome string) {
	if globalManager.enabled {
		globalManager.filesProcessed.WithLabelValues(outcome).Inc()
	}
}

// RecordRowsDecoded adds the number of rows decoded from a file.
func RecordRowsDecoded(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.rowsDecoded.Add(float64(n))
	}
}

// RecordChangeRecord counts one emitted change record by action.
func RecordChangeRecord(action string) {
	if globalManager.enabled {
		globalManager.changeRecords.WithLabelValues(action).Inc()
	}
}

// RecordBatchFailure counts a rejected batch by error kind.
func RecordBatchFailure(kind string) {
	if globalManager.enabled {
		globalManager.batchFailures.WithLabelValues(kind).Inc()
	}
}

// RecordReconcileLatency observes an end-to-end reconciliation duration in milliseconds.
func RecordReconcileLatency(ms float64) {
	if globalManager.enabled {
		globalManager.reconcileLatency.Observe(ms)
	}
}

// UpdateEmployeesTracked sets the current employee count gauge.
func UpdateEmployeesTracked(count int) {
	if globalManager.enabled {
		globalManager.employeesTracked.Set(float64(count))
	}
}

// RecordBulkOperation counts one applied bulk operation by action.
func RecordBulkOperation(action string) {
	if globalManager.enabled {
		globalManager.bulkOpsApplied.WithLabelValues(action).Inc()
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
	}
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
