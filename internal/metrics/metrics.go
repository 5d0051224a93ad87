// Package metrics holds the Prometheus collectors for wireframe generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wireframe"

// Generation outcomes.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Collectors groups the counters and histograms recorded by the pipeline.
// A nil *Collectors is valid and records nothing.
type Collectors struct {
	Generations      *prometheus.CounterVec
	Stages           *prometheus.CounterVec
	Repairs          prometheus.Counter
	ValidationErrors prometheus.Counter
	BackendLatency   *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		Generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Pipeline runs by operation and outcome (valid, invalid, failed).",
		}, []string{"operation", "outcome"}),
		Stages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_transitions_total",
			Help:      "Pipeline stage transitions.",
		}, []string{"stage"}),
		Repairs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "json_repairs_total",
			Help:      "Replies that parsed only after JSON repair.",
		}),
		ValidationErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Validation errors reported on generated documents.",
		}),
		BackendLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of generation backend calls.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"operation"}),
	}
}

// ObserveGeneration counts one finished run.
func (c *Collectors) ObserveGeneration(operation, outcome string) {
	if c == nil {
		return
	}
	c.Generations.WithLabelValues(operation, outcome).Inc()
}

// ObserveStage counts a stage transition.
func (c *Collectors) ObserveStage(stage string) {
	if c == nil {
		return
	}
	c.Stages.WithLabelValues(stage).Inc()
}

// ObserveRepair counts a reply that needed repair.
func (c *Collectors) ObserveRepair() {
	if c == nil {
		return
	}
	c.Repairs.Inc()
}

// ObserveValidationErrors adds n validation errors.
func (c *Collectors) ObserveValidationErrors(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.ValidationErrors.Add(float64(n))
}

// ObserveBackendLatency records one backend round-trip.
func (c *Collectors) ObserveBackendLatency(operation string, d time.Duration) {
	if c == nil {
		return
	}
	c.BackendLatency.WithLabelValues(operation).Observe(d.Seconds())
}
