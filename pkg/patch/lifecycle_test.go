package patch_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func TestUnmountDestroyOrder(t *testing.T) {
	var order []string
	destroy := func(name string) *vdom.Hooks {
		return &vdom.Hooks{Destroy: func(*vdom.VNode) { order = append(order, name) }}
	}

	h := newHarness(t)
	old := vdom.Div(destroy("a"),
		vdom.Div(destroy("b"), vdom.Span(destroy("c"))),
		vdom.P(destroy("d")),
	)
	h.mount(old)

	if got := h.p.Patch(old, nil, false, false); got != nil {
		t.Errorf("Patch(old, nil) = %v, want nil", got)
	}
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(order, want) {
		t.Errorf("destroy order = %v, want %v", order, want)
	}
	if n := len(h.reports); h.reports[n-1].Outcome != patch.OutcomeUnmount {
		t.Errorf("outcome = %s, want unmount", h.reports[n-1].Outcome)
	}
}

func TestRemoveRunsBeforeDestroy(t *testing.T) {
	var order []string
	var listeners int
	hooks := &vdom.Hooks{
		Remove: func(v *vdom.VNode, rm *vdom.RemoveCallback) {
			order = append(order, "remove")
			listeners = rm.Listeners()
			rm.Done()
		},
		Destroy: func(*vdom.VNode) { order = append(order, "destroy") },
	}

	h := newHarness(t)
	old := vdom.Div(vdom.P(hooks, "x"))
	container := h.mount(old)
	h.p.Patch(old, vdom.Div(), false, false)

	if want := []string{"remove", "destroy"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	// Every module has already called Done.
	if listeners != 1 {
		t.Errorf("outstanding listeners in remove hook = %d, want 1", listeners)
	}
	if got := innerHTML(container); got != "<div></div>" {
		t.Errorf("HTML = %s", got)
	}
}

func TestRemoveHookDefersDetach(t *testing.T) {
	var pending *vdom.RemoveCallback
	hooks := &vdom.Hooks{
		Remove: func(v *vdom.VNode, rm *vdom.RemoveCallback) { pending = rm },
	}

	h := newHarness(t)
	old := vdom.Div(vdom.P(hooks, "x"))
	container := h.mount(old)
	h.p.Patch(old, vdom.Div(), false, false)

	if got := innerHTML(container); got != "<div><p>x</p></div>" {
		t.Fatalf("HTML before Done = %s", got)
	}
	pending.Done()
	if got := innerHTML(container); got != "<div></div>" {
		t.Errorf("HTML after Done = %s", got)
	}
	pending.Done()
}

func TestLeaveTransitionDefersRemoval(t *testing.T) {
	var done func()
	leave := &vdom.Transition{
		Name:  "fade",
		Leave: func(v *vdom.VNode, cb func()) { done = cb },
	}

	h := newHarness(t)
	old := vdom.Ul(item("a"), vdom.Li(vdom.Key("b"), leave, "b"))
	container := h.mount(old)
	leaving := old.Children[1].Elm

	h.p.Patch(old, list("a"), false, false)

	if !h.mods.Transitions.IsLeaving(leaving) {
		t.Error("IsLeaving() = false during the leave transition")
	}
	if got := innerHTML(container); got != "<ul><li>a</li><li>b</li></ul>" {
		t.Fatalf("HTML during leave = %s", got)
	}

	done()
	done()
	if h.mods.Transitions.IsLeaving(leaving) {
		t.Error("IsLeaving() = true after done")
	}
	if got := innerHTML(container); got != "<ul><li>a</li></ul>" {
		t.Errorf("HTML after leave = %s", got)
	}
}

func TestReplaceLeavingRoot(t *testing.T) {
	var done func()
	leave := &vdom.Transition{Leave: func(v *vdom.VNode, cb func()) { done = cb }}

	h := newHarness(t)
	old := vdom.Div(leave, "old")
	container := h.mount(old)

	next := vdom.Section("new")
	h.p.Patch(old, next, false, false)

	if got := innerHTML(container); got != "<div>old</div><section>new</section>" {
		t.Fatalf("HTML during leave = %s", got)
	}
	done()
	if got := innerHTML(container); got != "<section>new</section>" {
		t.Errorf("HTML after leave = %s", got)
	}
}

func TestInsertHooksRunAfterAttach(t *testing.T) {
	h := newHarness(t)
	var order []string
	attached := func(name string) *vdom.Hooks {
		return &vdom.Hooks{Insert: []func(*vdom.VNode){func(v *vdom.VNode) {
			// Attached nodes reach the container through their ancestors.
			n := v.Elm
			for h.host.ParentNode(n) != nil {
				n = h.host.ParentNode(n)
			}
			if h.host.TagName(n) != "body" {
				t.Errorf("%s: insert hook ran before the tree was attached", name)
			}
			order = append(order, name)
		}}}
	}

	h.mount(vdom.Div(attached("parent"), vdom.Span(attached("child"))))

	if want := []string{"child", "parent"}; !reflect.DeepEqual(order, want) {
		t.Errorf("insert order = %v, want %v", order, want)
	}
}

func TestEnterOnlyForRootInsert(t *testing.T) {
	var entered []string
	enter := func(name string) *vdom.Transition {
		return &vdom.Transition{Enter: func(*vdom.VNode) { entered = append(entered, name) }}
	}

	h := newHarness(t)
	old := vdom.Div(vdom.P("x"))
	h.mount(old)

	next := vdom.Div(vdom.P("x"), vdom.Section(enter("outer"), vdom.Span(enter("inner"))))
	h.p.Patch(old, next, false, false)

	if want := []string{"outer"}; !reflect.DeepEqual(entered, want) {
		t.Errorf("entered = %v, want %v", entered, want)
	}

	// Patching again does not enter kept nodes.
	again := vdom.Div(vdom.P("x"), vdom.Section(enter("outer"), vdom.Span(enter("inner"))))
	h.p.Patch(next, again, false, false)
	if len(entered) != 1 {
		t.Errorf("entered = %v after update, want one entry", entered)
	}
}

func TestStaticSubtreeReused(t *testing.T) {
	h := newHarness(t)
	old := vdom.Div(vdom.P(vdom.Static(), vdom.Once(), "s"))
	container := h.mount(old)

	next := vdom.Div(vdom.P(vdom.Static(), vdom.Once(), "changed"))
	h.p.Patch(old, next, false, false)

	if next.Children[0].Elm != old.Children[0].Elm {
		t.Error("static element was not reused")
	}
	if got := innerHTML(container); got != "<div><p>s</p></div>" {
		t.Errorf("HTML = %s, want the static content untouched", got)
	}
	// The root is patched, the static child is not.
	if got := h.p.LastStats().Patched; got != 1 {
		t.Errorf("Patched = %d, want 1", got)
	}
}

func TestAsyncPlaceholder(t *testing.T) {
	t.Run("unresolved stays a placeholder", func(t *testing.T) {
		h := newHarness(t)
		factory := &vdom.AsyncFactory{}
		old := vdom.Div(vdom.AsyncPlaceholder(factory, ""))
		container := h.mount(old)

		next := vdom.Div(vdom.AsyncPlaceholder(factory, ""))
		h.p.Patch(old, next, false, false)

		ph := next.Children[0]
		if !ph.IsAsyncPlaceholder || ph.Elm != old.Children[0].Elm {
			t.Error("placeholder was not kept")
		}
		if got := innerHTML(container); got != "<div><!----></div>" {
			t.Errorf("HTML = %s", got)
		}
	})

	t.Run("failed factory replaces", func(t *testing.T) {
		h := newHarness(t)
		factory := &vdom.AsyncFactory{}
		old := vdom.Div(vdom.AsyncPlaceholder(factory, ""))
		container := h.mount(old)

		factory.Error = errors.New("load failed")
		next := vdom.Div(vdom.P("error"))
		h.p.Patch(old, next, false, false)

		if got := innerHTML(container); got != "<div><p>error</p></div>" {
			t.Errorf("HTML = %s", got)
		}
	})
}

func TestTextInputTypes(t *testing.T) {
	input := func(typ string) *vdom.VNode { return vdom.Input(vdom.Type(typ)) }

	tests := []struct {
		name   string
		opts   []patch.Option
		from   string
		to     string
		reused bool
	}{
		{"text to email", nil, "text", "email", true},
		{"text to checkbox", nil, "text", "checkbox", false},
		{"restricted policy", []patch.Option{patch.WithTextInputTypes([]string{"text"})}, "text", "email", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.opts...)
			old := vdom.Div(input(tt.from))
			h.mount(old)

			next := vdom.Div(input(tt.to))
			h.p.Patch(old, next, false, false)

			if got := next.Children[0].Elm == old.Children[0].Elm; got != tt.reused {
				t.Errorf("reused = %v, want %v", got, tt.reused)
			}
		})
	}
}

func TestUnknownElementReported(t *testing.T) {
	tests := []struct {
		name string
		opts []patch.Option
		node *vdom.VNode
		want bool
	}{
		{"unknown", nil, vdom.H("my-widget"), true},
		{"known", nil, vdom.Section(), false},
		{"svg namespace", nil, vdom.Svg(vdom.H("circle")), false},
		{"inside verbatim", nil, vdom.Pre(vdom.Verbatim(), vdom.H("my-widget")), false},
		{"ignored by name", []patch.Option{patch.WithIgnoredElements("my-widget")}, vdom.H("my-widget"), false},
		{"prod", []patch.Option{patch.WithDevMode(false)}, vdom.H("my-widget"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.opts...)
			old := vdom.Div()
			h.mount(old)
			h.p.Patch(old, vdom.Div(tt.node), false, false)

			if got := contains(h.codes(), "R002"); got != tt.want {
				t.Errorf("R002 reported = %v, want %v (diagnostics %v)", got, tt.want, h.codes())
			}
		})
	}
}

type scope string

func (s scope) ScopeID() string { return string(s) }

func TestStyleScopes(t *testing.T) {
	h := newHarness(t)
	v := vdom.Div(vdom.Scoped(scope("data-v-1")),
		vdom.P("plain"),
		&vdom.VNode{Kind: vdom.KindElement, Tag: "span", FnScopeID: "data-v-fn", Context: scope("data-v-2")},
	)
	h.mount(v)

	if !h.host.HasAttribute(v.Elm, "data-v-1") {
		t.Error("root is missing its context scope")
	}
	if h.host.HasAttribute(v.Children[0].Elm, "data-v-1") {
		t.Error("unscoped child received a scope")
	}
	span := v.Children[1].Elm
	if !h.host.HasAttribute(span, "data-v-fn") || h.host.HasAttribute(span, "data-v-2") {
		t.Error("functional scope did not take precedence")
	}
}

func TestActiveInstanceScope(t *testing.T) {
	active := scope("data-v-slot")
	h := newHarness(t, patch.WithActiveInstance(func() vdom.Context { return active }))
	v := vdom.Div(vdom.P(vdom.Scoped(active), "own"), vdom.P("slot"))
	h.mount(v)

	if !h.host.HasAttribute(v.Children[1].Elm, "data-v-slot") {
		t.Error("slot content is missing the active scope")
	}
	// Own content gets the scope through its context.
	if !h.host.HasAttribute(v.Children[0].Elm, "data-v-slot") {
		t.Error("own content is missing its scope")
	}
}

// mapScope is a context value of a non-comparable type.
type mapScope struct {
	id   string
	tags map[string]bool
}

func (s mapScope) ScopeID() string { return s.id }

func TestActiveInstanceNonComparableContext(t *testing.T) {
	active := mapScope{id: "data-v-slot", tags: map[string]bool{}}
	h := newHarness(t, patch.WithActiveInstance(func() vdom.Context { return active }))
	own := mapScope{id: "data-v-own", tags: map[string]bool{}}
	v := vdom.Div(vdom.P(vdom.Scoped(own), "own"))
	h.mount(v)

	p := v.Children[0].Elm
	if !h.host.HasAttribute(p, "data-v-own") || !h.host.HasAttribute(p, "data-v-slot") {
		t.Error("scoped content is missing its own or the active scope")
	}
}

func TestPatchNodeReportsMismatch(t *testing.T) {
	h := newHarness(t)
	old := vdom.Div("a")
	h.mount(old)

	v := vdom.Div("b")
	if got := h.p.PatchNode(old, v); got != old.Elm {
		t.Error("PatchNode() did not reuse the element")
	}
	if len(h.diags) != 0 {
		t.Errorf("diagnostics = %v, want none", h.codes())
	}

	mismatch := vdom.Span("c")
	h.p.PatchNode(v, mismatch)
	if !contains(h.codes(), "R010") {
		t.Errorf("diagnostics = %v, want R010", h.codes())
	}
}

func TestObserverOutcomes(t *testing.T) {
	h := newHarness(t)

	first := vdom.Div("a")
	elm := h.p.Patch(nil, first, false, false)
	if elm == nil || h.host.ParentNode(elm) != nil {
		t.Fatal("initial mount should create a detached root")
	}
	second := vdom.Div("b")
	h.p.Patch(first, second, false, false)
	third := vdom.Span("c")
	h.p.Patch(second, third, false, false)
	h.p.Patch(third, nil, false, false)

	var got []patch.Outcome
	for _, r := range h.reports {
		got = append(got, r.Outcome)
	}
	want := []patch.Outcome{patch.OutcomeMount, patch.OutcomeUpdate, patch.OutcomeReplace, patch.OutcomeUnmount}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("outcomes = %v, want %v", got, want)
	}
	if h.reports[0].Stats.Created != 2 {
		t.Errorf("mount Created = %d, want 2", h.reports[0].Stats.Created)
	}
}

func TestPanickingHookDoesNotNestLaterPasses(t *testing.T) {
	h := newHarness(t)
	boom := vdom.Div(&vdom.Hooks{Create: func(_, _ *vdom.VNode) { panic("boom") }})
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("Patch() did not panic")
			}
		}()
		h.p.Patch(nil, boom, false, false)
	}()

	h.p.Patch(nil, vdom.P("ok"), false, false)
	if len(h.reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(h.reports))
	}
	if got := h.reports[0].Stats.Created; got != 2 {
		t.Errorf("Created = %d, want 2", got)
	}
}

func TestElementTextCountsAsCreated(t *testing.T) {
	h := newHarness(t)
	h.p.Patch(nil, list("a", "b"), false, false)
	// ul, two li and their text nodes
	if got := h.p.LastStats().Created; got != 5 {
		t.Errorf("Created = %d, want 5", got)
	}
}

func TestDiagnosticsFallBackToLogger(t *testing.T) {
	// Without a reporter the engine logs and keeps going.
	p := patch.New(newHarness(t).host, nil)
	p.Patch(nil, vdom.Ul(item("a"), item("a")), false, false)
	if got := p.LastStats().Diagnostics; got != 1 {
		t.Errorf("Diagnostics = %d, want 1", got)
	}
}
