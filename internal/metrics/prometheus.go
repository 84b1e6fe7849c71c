package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every pipeline metric on a private registry.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimits      *prometheus.CounterVec
	rateLimitWait   *prometheus.CounterVec
	exclusions      *prometheus.CounterVec
	matches         *prometheus.CounterVec
	cache           *prometheus.CounterVec

	runDuration prometheus.Gauge
	runLastUnix prometheus.Gauge
	datasetSize *prometheus.GaugeVec
}

// NewManager creates a metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fpl",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.requests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Provider requests by HTTP status (0 for transport errors)",
	}, []string{"provider", "status"})

	m.requestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Provider request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"provider"})

	m.rateLimits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "api",
		Name:      "rate_limit_retries_total",
		Help:      "Requests re-issued after HTTP 429",
	}, []string{"provider"})

	m.rateLimitWait = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "api",
		Name:      "rate_limit_wait_seconds_total",
		Help:      "Time spent waiting out HTTP 429",
	}, []string{"provider"})

	m.exclusions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "engine",
		Name:      "exclusions_total",
		Help:      "Entities left out of a dataset by cause",
	}, []string{"cause"})

	m.matches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "matcher",
		Name:      "records_total",
		Help:      "Match records by outcome",
	}, []string{"outcome"})

	m.cache = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "artifacts_total",
		Help:      "Artifact lookups by outcome",
	}, []string{"outcome"})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "duration_seconds",
		Help:      "Duration of the last run",
	})

	m.runLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "last_completed_timestamp_seconds",
		Help:      "Unix time the last run completed",
	})

	m.datasetSize = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "run",
		Name:      "dataset_records",
		Help:      "Records in the last run's datasets",
	}, []string{"dataset", "state"})
}

// ObserveRequest records one provider request.
func (m *Manager) ObserveRequest(provider string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(provider, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObserveRateLimit records one 429 re-issue and its wait.
func (m *Manager) ObserveRateLimit(provider string, _ int, wait time.Duration) {
	m.rateLimits.WithLabelValues(provider).Inc()
	m.rateLimitWait.WithLabelValues(provider).Add(wait.Seconds())
}

// ObserveExclusion records one excluded entity.
func (m *Manager) ObserveExclusion(cause string) {
	m.exclusions.WithLabelValues(cause).Inc()
}

// ObserveMatch records one match record.
func (m *Manager) ObserveMatch(outcome string) {
	m.matches.WithLabelValues(outcome).Inc()
}

// ObserveCache records one artifact lookup.
func (m *Manager) ObserveCache(outcome string) {
	m.cache.WithLabelValues(outcome).Inc()
}

// ObserveDataset records the size of one dataset.
func (m *Manager) ObserveDataset(dataset string, built, excluded int) {
	m.datasetSize.WithLabelValues(dataset, "built").Set(float64(built))
	m.datasetSize.WithLabelValues(dataset, "excluded").Set(float64(excluded))
}

// RunCompleted records a finished run.
func (m *Manager) RunCompleted(duration time.Duration, at time.Time) {
	m.runDuration.Set(duration.Seconds())
	m.runLastUnix.Set(float64(at.Unix()))
}

// Registry returns the registry backing the manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes every metric in text exposition format to path.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
