package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run outcome labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordRun records one pipeline run.
func (r *Registry) RecordRun(status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.Observe(duration.Seconds())
}

// RecordNetwork records the size of the loaded pathway network.
func (r *Registry) RecordNetwork(nodes, edges int) {
	r.NetworkNodes.Set(float64(nodes))
	r.NetworkEdges.Set(float64(edges))
}

// RecordDiscovery records the outcome of one discovery pass.
func (r *Registry) RecordDiscovery(truePaths, falsePaths, edges, visits int) {
	r.PathsTotal.WithLabelValues("true").Add(float64(truePaths))
	r.PathsTotal.WithLabelValues("false").Add(float64(falsePaths))
	r.DiscoveredEdges.Set(float64(edges))
	r.SearchVisitsTotal.Add(float64(visits))
}

// RecordSolver records one external solver invocation.
func (r *Registry) RecordSolver(status string, duration time.Duration) {
	r.SolverInvocationsTotal.WithLabelValues(status).Inc()
	r.SolverDuration.Observe(duration.Seconds())
}

// WriteTextfile writes every metric in text exposition format to path, in
// the layout the node exporter textfile collector reads.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
