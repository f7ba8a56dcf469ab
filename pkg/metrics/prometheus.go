// Package metrics provides Prometheus metrics for the appraisal scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for ingestions.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeStorageError = "storage_error"
)

// Enqueue outcome label values.
const (
	EnqueueAccepted = "accepted"
	EnqueueFull     = "full"
	EnqueueClosed   = "closed"
	EnqueueCanceled = "canceled"
)

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scoring
	ingestions          *prometheus.CounterVec
	scoringLatency      *prometheus.HistogramVec
	undeterminedEntries *prometheus.CounterVec
	sectionScore        *prometheus.HistogramVec

	// Storage
	storageLatency *prometheus.HistogramVec
	storageErrors  *prometheus.CounterVec

	// Queue and workers
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	enqueues      *prometheus.CounterVec
	workerJobs    *prometheus.CounterVec
	workersActive prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "apiscore",
		subsystem:        "appraisal",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      prometheus.Labels{},
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

	m.ingestions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ingestions_total",
		Help:        "Section ingestions by section and outcome",
		ConstLabels: m.constLabels,
	}, []string{"section", "outcome"})

	m.scoringLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scoring_latency_milliseconds",
		Help:        "Time spent evaluating a section payload",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"section"})

	m.undeterminedEntries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "undetermined_entries_total",
		Help:        "Entries whose score could not be determined from their data",
		ConstLabels: m.constLabels,
	}, []string{"section"})

	m.sectionScore = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "section_score",
		Help:        "Distribution of stored section scores",
		Buckets:     []float64{0, 5, 10, 15, 20, 25, 30, 40, 50, 60, 100, 200},
		ConstLabels: m.constLabels,
	}, []string{"section"})

	m.storageLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "storage_latency_milliseconds",
		Help:        "Storage operation latency by backend and operation",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"backend", "operation"})

	m.storageErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "storage_errors_total",
		Help:        "Storage failures by backend and operation",
		ConstLabels: m.constLabels,
	}, []string{"backend", "operation"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_size",
		Help:        "Section jobs waiting in the form queue",
		ConstLabels: m.constLabels,
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_capacity",
		Help:        "Capacity of the form queue",
		ConstLabels: m.constLabels,
	})

	m.enqueues = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "queue_enqueues_total",
		Help:        "Enqueue attempts by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})

	m.workerJobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_jobs_total",
		Help:        "Section jobs processed by workers, by section and outcome",
		ConstLabels: m.constLabels,
	}, []string{"section", "outcome"})

	m.workersActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "workers_active",
		Help:        "Workers currently running",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "HTTP requests by endpoint, method and status code",
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
		Help:        "HTTP error responses by endpoint, method and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordIngestion counts one ingestion attempt.
func RecordIngestion(section, outcome string) {
	globalManager.ingestions.WithLabelValues(section, outcome).Inc()
}

// RecordScoringLatency observes evaluation time for a section.
func RecordScoringLatency(section string, latencyMs float64) {
	globalManager.scoringLatency.WithLabelValues(section).Observe(latencyMs)
}

// RecordUndetermined counts entries left without a score.
func RecordUndetermined(section string, n int) {
	if n <= 0 {
		return
	}
	globalManager.undeterminedEntries.WithLabelValues(section).Add(float64(n))
}

// RecordSectionScore observes a stored section score.
func RecordSectionScore(section string, score float64) {
	globalManager.sectionScore.WithLabelValues(section).Observe(score)
}

// RecordStorageLatency observes one storage call.
func RecordStorageLatency(backend, operation string, latencyMs float64) {
	globalManager.storageLatency.WithLabelValues(backend, operation).Observe(latencyMs)
}

// RecordStorageError counts one failed storage call.
func RecordStorageError(backend, operation string) {
	globalManager.storageErrors.WithLabelValues(backend, operation).Inc()
}

// UpdateQueueSize sets the number of queued jobs.
func UpdateQueueSize(n int) {
	globalManager.queueSize.Set(float64(n))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(n int) {
	globalManager.queueCapacity.Set(float64(n))
}

// RecordEnqueue counts one enqueue attempt.
func RecordEnqueue(outcome string) {
	globalManager.enqueues.WithLabelValues(outcome).Inc()
}

// RecordWorkerJob counts one job finished by a worker.
func RecordWorkerJob(section, outcome string) {
	globalManager.workerJobs.WithLabelValues(section, outcome).Inc()
}

// UpdateWorkersActive sets the number of running workers.
func UpdateWorkersActive(n int) {
	globalManager.workersActive.Set(float64(n))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
