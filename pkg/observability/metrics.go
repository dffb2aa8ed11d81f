package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global collector instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	IdeasCreated   prometheus.Counter
	IdeasDeleted   prometheus.Counter
	DocumentsSaved *prometheus.CounterVec

	// Storage metrics
	StorageMode prometheus.Gauge

	// AI provider metrics
	AICallDuration *prometheus.HistogramVec
	AICallFailures *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Use singleton pattern to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ideasCreated := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ideas_created_total",
			Help:      "Total number of ideas created",
		},
	)

	ideasDeleted := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ideas_deleted_total",
			Help:      "Total number of ideas deleted",
		},
	)

	documentsSaved := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_saved_total",
			Help:      "Total number of analysis documents saved, by kind",
		},
		[]string{"kind"},
	)

	storageMode := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storage_mode_local",
			Help:      "1 when the local key-value backend is active, 0 for hosted",
		},
	)

	aiCallDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_call_duration_seconds",
			Help:      "Generative AI call duration in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"operation"},
	)

	aiCallFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_call_failures_total",
			Help:      "Total number of failed generative AI calls",
		},
		[]string{"operation", "reason"},
	)

	registry.MustRegister(
		httpRequests,
		httpDuration,
		ideasCreated,
		ideasDeleted,
		documentsSaved,
		storageMode,
		aiCallDuration,
		aiCallFailures,
	)

	globalCollector = &Collector{
		registry:       registry,
		HTTPRequests:   httpRequests,
		HTTPDuration:   httpDuration,
		IdeasCreated:   ideasCreated,
		IdeasDeleted:   ideasDeleted,
		DocumentsSaved: documentsSaved,
		StorageMode:    storageMode,
		AICallDuration: aiCallDuration,
		AICallFailures: aiCallFailures,
	}

	return globalCollector
}

// ResetForTesting resets the global collector for testing purposes
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}
