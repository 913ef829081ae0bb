package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects declaration metrics for one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	resourcesDeclared *prometheus.CounterVec
	phaseDuration     *prometheus.HistogramVec
	phaseTotal        *prometheus.CounterVec
	declarationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers the run metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		resourcesDeclared: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kcstack",
				Subsystem: "provisioning",
				Name:      "resources_declared_total",
				Help:      "Constructs declared by phase and kind",
			},
			[]string{"phase", "kind"},
		),

		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "kcstack",
				Subsystem: "provisioning",
				Name:      "phase_duration_seconds",
				Help:      "Duration of each declaration phase in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
			},
			[]string{"phase"},
		),

		phaseTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kcstack",
				Subsystem: "provisioning",
				Name:      "phase_total",
				Help:      "Phases run by result",
			},
			[]string{"phase", "result"},
		),

		declarationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "kcstack",
				Subsystem: "stack",
				Name:      "declarations_total",
				Help:      "Stack declarations by result",
			},
			[]string{"stack", "result"},
		),
	}

	m.registry.MustRegister(
		m.resourcesDeclared,
		m.phaseDuration,
		m.phaseTotal,
		m.declarationsTotal,
	)
	return m
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ResourceDeclared counts one declared construct.
func (m *Metrics) ResourceDeclared(phase, kind string) {
	m.resourcesDeclared.WithLabelValues(phase, kind).Inc()
}

// ObservePhase records a phase run.
func (m *Metrics) ObservePhase(phase string, d time.Duration, err error) {
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
	m.phaseTotal.WithLabelValues(phase, result(err)).Inc()
}

// ObserveDeclaration records the outcome of declaring one stack.
func (m *Metrics) ObserveDeclaration(stack string, err error) {
	m.declarationsTotal.WithLabelValues(stack, result(err)).Inc()
}

// WriteFile writes the metrics in the node exporter textfile format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
