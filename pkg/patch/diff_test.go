package patch_test

import (
	"testing"

	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

func TestPatchIdempotent(t *testing.T) {
	build := func() *vdom.VNode {
		return vdom.Div(vdom.ID("root"), vdom.Class("a", "b"),
			vdom.H1("Title"),
			list("x", "y", "z"),
			vdom.P(vdom.Style("color", "red"), "body"),
		)
	}
	h := newHarness(t)
	old := build()
	container := h.mount(old)
	before := innerHTML(container)

	next := build()
	h.p.Patch(old, next, false, false)

	stats := h.p.LastStats()
	if stats.Created != 0 || stats.Removed != 0 || stats.Moved != 0 {
		t.Errorf("stats = %+v, want no creations, removals or moves", stats)
	}
	if h.host.created != 0 || h.host.removes != 0 || h.host.inserts != 0 {
		t.Errorf("host ops: created=%d inserts=%d removes=%d, want 0",
			h.host.created, h.host.inserts, h.host.removes)
	}
	if got := innerHTML(container); got != before {
		t.Errorf("HTML = %s, want %s", got, before)
	}
	if next.Elm != old.Elm {
		t.Error("root element was not reused")
	}
}

func TestUpdateChildren(t *testing.T) {
	tests := []struct {
		name        string
		from, to    []string
		wantCreated int // an item is an element plus its text
		wantRemoved int
		wantMoves   int
		wantReused  []string
	}{
		{"append", []string{"a", "b"}, []string{"a", "b", "c"}, 2, 0, 0, []string{"a", "b"}},
		{"prepend", []string{"a", "b"}, []string{"c", "a", "b"}, 2, 0, 0, []string{"a", "b"}},
		{"insert middle", []string{"a", "c"}, []string{"a", "b", "c"}, 2, 0, 0, []string{"a", "c"}},
		{"remove head", []string{"a", "b", "c"}, []string{"b", "c"}, 0, 1, 0, []string{"b", "c"}},
		{"remove all", []string{"a", "b"}, []string{"z"}, 2, 2, 0, nil},
		{"rotate right", []string{"a", "b", "c"}, []string{"c", "a", "b"}, 0, 0, 1, []string{"a", "b", "c"}},
		{"rotate left", []string{"a", "b", "c"}, []string{"b", "c", "a"}, 0, 0, 1, []string{"a", "b", "c"}},
		{"swap ends", []string{"a", "b", "c", "d"}, []string{"d", "b", "c", "a"}, 0, 0, 2, []string{"a", "b", "c", "d"}},
		{"reverse", []string{"a", "b", "c", "d"}, []string{"d", "c", "b", "a"}, 0, 0, 3, []string{"a", "b", "c", "d"}},
		{"shuffle with key map", []string{"a", "b", "c", "d", "e"}, []string{"c", "e", "a", "x", "b"}, 2, 1, 3, []string{"a", "b", "c", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			old := list(tt.from...)
			container := h.mount(old)
			before := elms(old)

			next := list(tt.to...)
			h.p.Patch(old, next, false, false)

			stats := h.p.LastStats()
			if stats.Created != tt.wantCreated {
				t.Errorf("Created = %d, want %d", stats.Created, tt.wantCreated)
			}
			if stats.Removed != tt.wantRemoved {
				t.Errorf("Removed = %d, want %d", stats.Removed, tt.wantRemoved)
			}
			if stats.Moved != tt.wantMoves {
				t.Errorf("Moved = %d, want %d", stats.Moved, tt.wantMoves)
			}

			after := elms(next)
			for _, k := range tt.wantReused {
				if after[k] != before[k] {
					t.Errorf("item %q was recreated", k)
				}
			}

			want := "<ul>"
			for _, k := range tt.to {
				want += "<li>" + k + "</li>"
			}
			want += "</ul>"
			if got := innerHTML(container); got != want {
				t.Errorf("HTML = %s, want %s", got, want)
			}
		})
	}
}

func TestKeyReorderOnlyMoves(t *testing.T) {
	h := newHarness(t)
	old := list("k1", "k2", "k3")
	h.mount(old)
	before := elms(old)

	next := list("k3", "k1", "k2")
	h.p.Patch(old, next, false, false)

	if h.host.created != 0 || h.host.removes != 0 {
		t.Errorf("created=%d removes=%d, want 0", h.host.created, h.host.removes)
	}
	for k, elm := range elms(next) {
		if before[k] != elm {
			t.Errorf("key %s got a new element", k)
		}
	}
}

func TestPrependInsertsBeforeFirst(t *testing.T) {
	h := newHarness(t)
	old := list("a", "b")
	h.mount(old)
	aElm := old.Children[0].Elm

	next := list("c", "a", "b")
	h.p.Patch(old, next, false, false)

	if got := h.host.NextSibling(next.Children[0].Elm); got != aElm {
		t.Error("new item was not inserted before a")
	}
}

func TestKeyCollisionReplaces(t *testing.T) {
	h := newHarness(t)
	old := vdom.Div(vdom.H("div", vdom.Key("k1"), "old"))
	container := h.mount(old)
	oldChild := old.Children[0].Elm

	next := vdom.Div(vdom.H("span", vdom.Key("k1"), "new"))
	h.p.Patch(old, next, false, false)

	if next.Children[0].Elm == oldChild {
		t.Fatal("element with a different tag was reused")
	}
	if h.host.ParentNode(oldChild) != nil {
		t.Error("old element is still attached")
	}
	if got := innerHTML(container); got != "<div><span>new</span></div>" {
		t.Errorf("HTML = %s", got)
	}
	stats := h.p.LastStats()
	if stats.Removed != 1 || stats.Created < 1 {
		t.Errorf("stats = %+v, want one removal and a creation", stats)
	}
}

func TestKeyMapCollisionInWindow(t *testing.T) {
	// The key lookup finds an old node whose tag differs from the new one.
	h := newHarness(t)
	old := vdom.Ul(item("a"), item("b"), item("c"))
	container := h.mount(old)

	next := vdom.Ul(item("c"), vdom.H("p", vdom.Key("a"), "pa"), item("x"))
	h.p.Patch(old, next, false, false)

	if got := innerHTML(container); got != "<ul><li>c</li><p>pa</p><li>x</li></ul>" {
		t.Errorf("HTML = %s", got)
	}
}

func TestDuplicateKeys(t *testing.T) {
	h := newHarness(t)
	old := list("k0")
	container := h.mount(old)

	first := list("k1", "k1")
	h.p.Patch(old, first, false, false)
	if !contains(h.codes(), "R001") {
		t.Errorf("diagnostics = %v, want R001", h.codes())
	}
	if got := innerHTML(container); got != "<ul><li>k1</li><li>k1</li></ul>" {
		t.Errorf("HTML = %s", got)
	}

	// Patching against a list holding duplicates completes as well.
	second := list("k1", "k2", "k1")
	h.p.Patch(first, second, false, false)
	if got := innerHTML(container); got != "<ul><li>k1</li><li>k2</li><li>k1</li></ul>" {
		t.Errorf("HTML = %s", got)
	}
}

func TestDuplicateKeysSilentOutsideDevMode(t *testing.T) {
	h := newHarness(t, patch.WithDevMode(false))
	old := list("a")
	h.mount(old)
	h.p.Patch(old, list("a", "a"), false, false)
	if len(h.diags) != 0 {
		t.Errorf("diagnostics = %v, want none", h.codes())
	}
}

func TestUnkeyedMatchesBySameNode(t *testing.T) {
	h := newHarness(t)
	old := vdom.Div(vdom.P("p"), vdom.Span("s"), vdom.Em("e"))
	container := h.mount(old)
	spanElm := old.Children[1].Elm

	next := vdom.Div(vdom.Span("s2"), vdom.Strong("n"))
	h.p.Patch(old, next, false, false)

	if next.Children[0].Elm != spanElm {
		t.Error("unkeyed span was not found by the window scan")
	}
	if got := innerHTML(container); got != "<div><span>s2</span><strong>n</strong></div>" {
		t.Errorf("HTML = %s", got)
	}
}

func TestRemoveOnlySuppressesMoves(t *testing.T) {
	h := newHarness(t)
	old := list("a", "b", "c")
	container := h.mount(old)

	next := list("c", "a", "b")
	h.p.Patch(old, next, false, true)

	if h.p.LastStats().Moved != 0 {
		t.Errorf("Moved = %d, want 0", h.p.LastStats().Moved)
	}
	if got := innerHTML(container); got != "<ul><li>a</li><li>b</li><li>c</li></ul>" {
		t.Errorf("HTML = %s, want original order", got)
	}
}

func TestChildrenTextTransitions(t *testing.T) {
	h := newHarness(t)
	old := vdom.Div(vdom.P("a"))
	container := h.mount(old)

	steps := []struct {
		name string
		next *vdom.VNode
		want string
	}{
		{"children to text", &vdom.VNode{Kind: vdom.KindElement, Tag: "div", Text: "hello"}, "<div>hello</div>"},
		{"text change", &vdom.VNode{Kind: vdom.KindElement, Tag: "div", Text: "bye"}, "<div>bye</div>"},
		{"text to children", vdom.Div(vdom.P("x"), vdom.P("y")), "<div><p>x</p><p>y</p></div>"},
		{"children to empty", vdom.Div(), "<div></div>"},
		{"empty to text node child", vdom.Div("t"), "<div>t</div>"},
		{"text node change", vdom.Div("u"), "<div>u</div>"},
		{"comment", vdom.Div(vdom.Comment("c")), "<div><!--c--></div>"},
		{"comment change", vdom.Div(vdom.Comment("d")), "<div><!--d--></div>"},
	}

	prev := old
	for _, step := range steps {
		h.p.Patch(prev, step.next, false, false)
		if got := innerHTML(container); got != step.want {
			t.Errorf("%s: HTML = %s, want %s", step.name, got, step.want)
		}
		prev = step.next
	}
}

func TestReusedVNodeIsCloned(t *testing.T) {
	h := newHarness(t)
	shared := vdom.Span("shared")
	old := vdom.Div(shared)
	container := h.mount(old)

	// The same node object is rendered twice.
	next := vdom.Div(shared, shared)
	h.p.Patch(old, next, false, false)

	if next.Children[1] == shared {
		t.Fatal("reused node was not cloned")
	}
	if !next.Children[1].IsCloned {
		t.Error("IsCloned = false on the replacement")
	}
	if next.Children[1].Elm == shared.Elm {
		t.Error("both positions share one real node")
	}
	if got := innerHTML(container); got != "<div><span>shared</span><span>shared</span></div>" {
		t.Errorf("HTML = %s", got)
	}
}
