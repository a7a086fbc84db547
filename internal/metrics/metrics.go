// Package metrics exposes Prometheus instrumentation for pipeline analysis.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RequestsTotal.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Recorder holds the collectors registered for one process.
type Recorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	nodes    prometheus.Histogram
	edges    prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	sizeBuckets := prometheus.ExponentialBuckets(1, 4, 9)

	return &Recorder{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pipecheck_requests_total",
			Help: "Pipeline analysis requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipecheck_analysis_duration_seconds",
			Help:    "Time spent parsing and analysing a pipeline.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 10),
		}, []string{"operation"}),
		nodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipecheck_graph_nodes",
			Help:    "Node count of accepted pipelines.",
			Buckets: sizeBuckets,
		}),
		edges: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipecheck_graph_edges",
			Help:    "Edge count of accepted pipelines.",
			Buckets: sizeBuckets,
		}),
	}
}

// Accepted records a successful analysis.
func (r *Recorder) Accepted(operation string, d time.Duration, numNodes, numEdges int) {
	r.requests.WithLabelValues(operation, OutcomeOK).Inc()
	r.duration.WithLabelValues(operation).Observe(d.Seconds())
	r.nodes.Observe(float64(numNodes))
	r.edges.Observe(float64(numEdges))
}

// Rejected records a pipeline refused as invalid input.
func (r *Recorder) Rejected(operation string) {
	r.requests.WithLabelValues(operation, OutcomeRejected).Inc()
}
