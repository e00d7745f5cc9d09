package instrument

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vango-dev/reconcile/pkg/htmldom"
	"github.com/vango-dev/reconcile/pkg/modules"
	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

var start = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func report(outcome patch.Outcome, s patch.Stats) patch.PatchReport {
	return patch.PatchReport{Outcome: outcome, Stats: s, Start: start, Duration: 3 * time.Millisecond}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.ObservePatch(report(patch.OutcomeMount, patch.Stats{Created: 5}))
	m.ObservePatch(report(patch.OutcomeUpdate, patch.Stats{Created: 1, Removed: 2, Moved: 1, Patched: 4, Diagnostics: 1}))
	m.ObservePatch(report(patch.OutcomeHydrate, patch.Stats{Created: 3, HydrationFailed: true}))

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"mount passes", m.passes.WithLabelValues("mount"), 1},
		{"update passes", m.passes.WithLabelValues("update"), 1},
		{"created", m.nodes.WithLabelValues("created"), 9},
		{"removed", m.nodes.WithLabelValues("removed"), 2},
		{"moved", m.nodes.WithLabelValues("moved"), 1},
		{"patched", m.nodes.WithLabelValues("patched"), 4},
		{"diagnostics", m.diagnostics, 1},
		{"hydration failures", m.hydrationFailures, 1},
	}
	for _, tc := range tests {
		if got := testutil.ToFloat64(tc.c); got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, got, tc.want)
		}
	}

	if got := testutil.CollectAndCount(m.duration, "test_pass_duration_seconds"); got != 3 {
		t.Errorf("duration series = %d, want 3", got)
	}
	if _, err := reg.Gather(); err != nil {
		t.Errorf("Gather() error = %v", err)
	}
}

func TestMetricsFromPatcher(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	host := htmldom.New()
	p := patch.New(host, modules.Default(host), patch.WithObserver(m))
	old := vdom.Ul(vdom.Li(vdom.Key("a"), "a"), vdom.Li(vdom.Key("b"), "b"))
	p.Patch(nil, old, false, false)
	p.Patch(old, vdom.Ul(vdom.Li(vdom.Key("b"), "b"), vdom.Li(vdom.Key("a"), "a")), false, false)

	if got := testutil.ToFloat64(m.passes.WithLabelValues("mount")); got != 1 {
		t.Errorf("mount passes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.passes.WithLabelValues("update")); got != 1 {
		t.Errorf("update passes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.nodes.WithLabelValues("moved")); got != 1 {
		t.Errorf("moved = %v, want 1", got)
	}
}

func TestTracing(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	tr := NewTracing(WithTracerProvider(tp), WithTracerName("test"))

	tr.ObservePatch(report(patch.OutcomeUpdate, patch.Stats{Created: 2, Patched: 7}))
	tr.ObservePatch(report(patch.OutcomeHydrate, patch.Stats{HydrationFailed: true}))

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}

	update := spans[0]
	if update.Name() != "reconcile.update" {
		t.Errorf("Name() = %q, want reconcile.update", update.Name())
	}
	if !update.StartTime().Equal(start) {
		t.Errorf("StartTime() = %v, want %v", update.StartTime(), start)
	}
	if d := update.EndTime().Sub(update.StartTime()); d != 3*time.Millisecond {
		t.Errorf("span duration = %v, want 3ms", d)
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range update.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if got := attrs["reconcile.created"].AsInt64(); got != 2 {
		t.Errorf("reconcile.created = %d, want 2", got)
	}
	if got := attrs["reconcile.patched"].AsInt64(); got != 7 {
		t.Errorf("reconcile.patched = %d, want 7", got)
	}
	if update.Status().Code != codes.Ok {
		t.Errorf("Status() = %v, want Ok", update.Status())
	}

	if hydrate := spans[1]; hydrate.Status().Code != codes.Error {
		t.Errorf("hydrate Status() = %v, want Error", hydrate.Status())
	}
}

type countObserver struct{ n int }

func (c *countObserver) ObservePatch(patch.PatchReport) { c.n++ }

func TestMulti(t *testing.T) {
	a, b := &countObserver{}, &countObserver{}
	m := Multi{a, nil, b}
	m.ObservePatch(report(patch.OutcomeMount, patch.Stats{}))
	if a.n != 1 || b.n != 1 {
		t.Errorf("calls = %d, %d; want 1, 1", a.n, b.n)
	}
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Log(logger, slog.LevelDebug).ObservePatch(report(patch.OutcomeReplace, patch.Stats{Created: 4}))

	out := buf.String()
	for _, want := range []string{"patch pass", "outcome=replace", "created=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
