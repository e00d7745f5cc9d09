package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reconcile/pkg/patch"
)

// Default tracer name.
const defaultTracerName = "reconcile"

// TracingConfig configures the OpenTelemetry observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "reconcile").
	TracerName string

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Context returns the parent context for the next span, so passes can
	// nest under a request span. Default: context.Background.
	Context func() context.Context
}

// TracingOption configures the OpenTelemetry observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.TracerProvider = tp
	}
}

// WithParentContext sets the parent context source.
func WithParentContext(fn func() context.Context) TracingOption {
	return func(c *TracingConfig) {
		c.Context = fn
	}
}

// Tracing is a patch.Observer that records one span per pass. Spans are
// named "reconcile.<outcome>" and carry the pass statistics as attributes;
// a bailed hydration sets the span status to Error.
//
// The span is recorded after the fact with the pass's own start time and
// duration.
type Tracing struct {
	tracer trace.Tracer
	ctx    func() context.Context
}

// NewTracing creates the observer.
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	t := &Tracing{ctx: config.Context}
	if config.TracerProvider != nil {
		t.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		t.tracer = otel.Tracer(config.TracerName)
	}
	if t.ctx == nil {
		t.ctx = context.Background
	}
	return t
}

// ObservePatch implements patch.Observer.
func (t *Tracing) ObservePatch(r patch.PatchReport) {
	_, span := t.tracer.Start(t.ctx(), "reconcile."+string(r.Outcome),
		trace.WithTimestamp(r.Start),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	s := r.Stats
	span.SetAttributes(
		attribute.String("reconcile.outcome", string(r.Outcome)),
		attribute.Int("reconcile.created", s.Created),
		attribute.Int("reconcile.removed", s.Removed),
		attribute.Int("reconcile.moved", s.Moved),
		attribute.Int("reconcile.patched", s.Patched),
		attribute.Int("reconcile.hydrated", s.Hydrated),
		attribute.Int("reconcile.diagnostics", s.Diagnostics),
	)
	if s.HydrationFailed {
		span.SetAttributes(attribute.Bool("reconcile.hydration_failed", true))
		span.SetStatus(codes.Error, "hydration bailed")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(r.Start.Add(r.Duration)))
}
