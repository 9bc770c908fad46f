package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigpath_runs_total",
			Help: "Total number of discovery runs by outcome",
		},
		[]string{"status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sigpath_run_duration_seconds",
			Help:    "Discovery run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
	)
}

func (r *Registry) initSearchMetrics() {
	r.PathsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigpath_paths_total",
			Help: "Sources classified by path kind (true or false)",
		},
		[]string{"kind"},
	)

	r.DiscoveredEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sigpath_discovered_edges",
			Help: "Number of edges in the last discovered network",
		},
	)

	r.SearchVisitsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "sigpath_search_visits_total",
			Help: "Total number of edges examined by the depth-bounded search",
		},
	)

	r.NetworkNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sigpath_network_nodes",
			Help: "Number of nodes in the loaded pathway network",
		},
	)

	r.NetworkEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "sigpath_network_edges",
			Help: "Number of edges in the loaded pathway network",
		},
	)
}

func (r *Registry) initSolverMetrics() {
	r.SolverInvocationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sigpath_solver_invocations_total",
			Help: "Total number of external solver invocations by outcome",
		},
		[]string{"status"},
	)

	r.SolverDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sigpath_solver_duration_seconds",
			Help:    "External solver wall time in seconds",
			Buckets: []float64{0.1, 1.0, 10.0, 60.0, 300.0, 600.0},
		},
	)
}
