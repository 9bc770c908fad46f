package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the run metrics of the path discovery pipeline.
type Registry struct {
	// Run Metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Search Metrics
	PathsTotal        *prometheus.CounterVec
	DiscoveredEdges   prometheus.Gauge
	SearchVisitsTotal prometheus.Counter

	// Network Metrics
	NetworkNodes prometheus.Gauge
	NetworkEdges prometheus.Gauge

	// Solver Metrics
	SolverInvocationsTotal *prometheus.CounterVec
	SolverDuration         prometheus.Histogram

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry backed by its own prometheus.Registry, so
// independent runs and tests never collide on registration.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initRunMetrics()
	r.initSearchMetrics()
	r.initSolverMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
