package instrument

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/reconcile/pkg/patch"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reconcile").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: DefaultBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// DefaultBuckets cover passes from 10µs to about 1s.
var DefaultBuckets = prometheus.ExponentialBuckets(0.00001, 4, 9)

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics is a patch.Observer exporting Prometheus metrics:
//
//   - reconcile_passes_total: passes by outcome
//   - reconcile_pass_duration_seconds: pass duration by outcome
//   - reconcile_nodes_total: node work by kind (created, removed, moved,
//     patched, hydrated)
//   - reconcile_diagnostics_total: diagnostics reported
//   - reconcile_hydration_failures_total: hydration attempts that bailed
type Metrics struct {
	passes            *prometheus.CounterVec
	duration          *prometheus.HistogramVec
	nodes             *prometheus.CounterVec
	diagnostics       prometheus.Counter
	hydrationFailures prometheus.Counter
}

// NewMetrics registers the metrics and returns the observer. Registering
// twice with the same registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "reconcile",
		Buckets:   DefaultBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of patch passes by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Patch pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"outcome"}),

		nodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_total",
			Help:        "Nodes created, removed, moved, patched or hydrated",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		diagnostics: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diagnostics_total",
			Help:        "Total number of diagnostics reported during passes",
			ConstLabels: config.ConstLabels,
		}),

		hydrationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hydration_failures_total",
			Help:        "Total number of hydration attempts that fell back to a client render",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ObservePatch implements patch.Observer.
func (m *Metrics) ObservePatch(r patch.PatchReport) {
	outcome := string(r.Outcome)
	m.passes.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(r.Duration.Seconds())

	s := r.Stats
	m.addNodes("created", s.Created)
	m.addNodes("removed", s.Removed)
	m.addNodes("moved", s.Moved)
	m.addNodes("patched", s.Patched)
	m.addNodes("hydrated", s.Hydrated)
	if s.Diagnostics > 0 {
		m.diagnostics.Add(float64(s.Diagnostics))
	}
	if s.HydrationFailed {
		m.hydrationFailures.Inc()
	}
}

func (m *Metrics) addNodes(kind string, n int) {
	if n > 0 {
		m.nodes.WithLabelValues(kind).Add(float64(n))
	}
}
