package patch_test

import (
	"reflect"
	"testing"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

type instance struct {
	root *vdom.VNode
}

func (i *instance) Elm() vdom.Node    { return i.root.Elm }
func (i *instance) Root() *vdom.VNode { return i.root }

// component mounts render() through the same Patcher, the way a component
// system drives nested renders from the placeholder hooks.
type component struct {
	h         *harness
	render    func() *vdom.VNode
	log       []string
	keepAlive bool
}

func (c *component) placeholder(args ...any) *vdom.VNode {
	hooks := &vdom.Hooks{
		Init: func(v *vdom.VNode, hydrating bool) {
			if v.ComponentInstance != nil {
				return
			}
			root := c.render()
			root.Parent = v
			if hydrating {
				c.h.p.Patch(v.Elm, root, true, false)
			} else {
				c.h.p.Patch(nil, root, false, false)
			}
			v.ComponentInstance = &instance{root: root}
		},
		Prepatch: func(old, v *vdom.VNode) {
			inst := old.ComponentInstance.(*instance)
			v.ComponentInstance = inst
			root := c.render()
			root.Parent = v
			c.h.p.Patch(inst.root, root, false, false)
			inst.root = root
		},
		Insert: []func(*vdom.VNode){func(*vdom.VNode) { c.log = append(c.log, "mounted") }},
		Destroy: func(v *vdom.VNode) {
			if c.keepAlive {
				c.log = append(c.log, "deactivated")
				return
			}
			c.h.p.Patch(v.ComponentInstance.Root(), nil, false, false)
		},
	}
	v := vdom.Component("my-comp", &vdom.ComponentOptions{Name: "MyComp"}, hooks, args...)
	v.Data.KeepAlive = c.keepAlive
	return v
}

func TestComponentMount(t *testing.T) {
	h := newHarness(t)
	c := &component{h: h}
	c.render = func() *vdom.VNode {
		return vdom.Span(&vdom.Hooks{Insert: []func(*vdom.VNode){func(v *vdom.VNode) {
			attached := h.host.ParentNode(v.Elm) != nil
			c.log = append(c.log, "root inserted", map[bool]string{true: "attached", false: "detached"}[attached])
		}}}, "inside")
	}

	ph := c.placeholder()
	container := h.mount(vdom.Div(ph))

	if got := innerHTML(container); got != "<div><span>inside</span></div>" {
		t.Errorf("HTML = %s", got)
	}
	if ph.Elm == nil || ph.Elm != ph.ComponentInstance.Elm() {
		t.Error("placeholder does not share the component root")
	}
	want := []string{"root inserted", "attached", "mounted"}
	if !reflect.DeepEqual(c.log, want) {
		t.Errorf("log = %v, want %v", c.log, want)
	}
	if ph.Data.PendingInsert != nil {
		t.Error("PendingInsert was not drained")
	}
	// The nested mount belongs to the outer pass.
	if len(h.reports) != 1 {
		t.Errorf("reports = %d, want 1", len(h.reports))
	}
}

func TestComponentUpdateAndDestroy(t *testing.T) {
	h := newHarness(t)
	text := "one"
	destroyed := 0
	c := &component{h: h}
	c.render = func() *vdom.VNode {
		return vdom.Span(&vdom.Hooks{Destroy: func(*vdom.VNode) { destroyed++ }}, text)
	}

	old := vdom.Div(c.placeholder())
	container := h.mount(old)
	rootElm := old.Children[0].Elm

	text = "two"
	next := vdom.Div(c.placeholder())
	h.p.Patch(old, next, false, false)

	if got := innerHTML(container); got != "<div><span>two</span></div>" {
		t.Errorf("HTML = %s", got)
	}
	if next.Children[0].Elm != rootElm {
		t.Error("component root was recreated")
	}

	h.p.Patch(next, nil, false, false)
	if destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", destroyed)
	}
}

func TestComponentRootReplaced(t *testing.T) {
	h := newHarness(t)
	tag := "span"
	c := &component{h: h}
	c.render = func() *vdom.VNode { return vdom.H(tag, "root") }

	ph := c.placeholder(vdom.Ref("comp"))
	old := vdom.Div(ph)
	container := h.mount(old)

	tag = "section"
	next := vdom.Div(c.placeholder(vdom.Ref("comp")))
	h.p.Patch(old, next, false, false)

	newPh := next.Children[0]
	if got := innerHTML(container); got != "<div><section>root</section></div>" {
		t.Errorf("HTML = %s", got)
	}
	if newPh.Elm != newPh.ComponentInstance.Root().Elm {
		t.Error("placeholder was not re-pointed at the new root")
	}
	if ref, ok := h.mods.Refs.Lookup("comp"); !ok || ref != newPh.ComponentInstance {
		t.Errorf("ref = %v, want the component instance", ref)
	}
}

func TestComponentHydration(t *testing.T) {
	h := newHarness(t)
	c := &component{h: h}
	c.render = func() *vdom.VNode { return vdom.Span("inside") }

	root := parseRoot(t, `<div data-server-rendered="true"><span>inside</span></div>`)
	v := vdom.Div(c.placeholder())
	h.p.Patch(root, v, false, false)

	if h.p.LastStats().HydrationFailed {
		t.Fatalf("HydrationFailed = true, diagnostics %v", h.codes())
	}
	if h.host.created != 0 {
		t.Errorf("created = %d, want 0", h.host.created)
	}
	if v.Children[0].Elm != root.FirstChild {
		t.Error("component did not adopt the server node")
	}
	if !reflect.DeepEqual(c.log, []string{"mounted"}) {
		t.Errorf("log = %v, want [mounted]", c.log)
	}
}

func TestKeepAliveReactivation(t *testing.T) {
	h := newHarness(t)
	enters := 0
	c := &component{h: h, keepAlive: true}
	c.render = func() *vdom.VNode {
		return vdom.Div(&vdom.Transition{Enter: func(*vdom.VNode) { enters++ }}, "kept")
	}

	ph := c.placeholder()
	old := vdom.Div(ph)
	container := h.mount(old)
	if enters != 1 {
		t.Fatalf("enters after mount = %d, want 1", enters)
	}
	inst := ph.ComponentInstance

	hidden := vdom.Div()
	h.p.Patch(old, hidden, false, false)
	if got := innerHTML(container); got != "<div></div>" {
		t.Fatalf("HTML after deactivation = %s", got)
	}

	back := c.placeholder()
	back.ComponentInstance = inst
	shown := vdom.Div(back)
	h.p.Patch(hidden, shown, false, false)

	if got := innerHTML(container); got != "<div><div>kept</div></div>" {
		t.Errorf("HTML after reactivation = %s", got)
	}
	if enters != 2 {
		t.Errorf("enters = %d, want 2", enters)
	}
	if !reflect.DeepEqual(c.log, []string{"mounted", "deactivated", "mounted"}) {
		t.Errorf("log = %v", c.log)
	}
}

func TestEmptyComponentRoot(t *testing.T) {
	h := newHarness(t)
	c := &component{h: h}
	c.render = func() *vdom.VNode { return vdom.Comment("empty") }

	ph := c.placeholder(vdom.Ref("comp"))
	container := h.mount(vdom.Div(ph))

	if got := innerHTML(container); got != "<div><!--empty--></div>" {
		t.Errorf("HTML = %s", got)
	}
	if _, ok := h.mods.Refs.Lookup("comp"); !ok {
		t.Error("ref of a component with an empty root was not registered")
	}
	if !reflect.DeepEqual(c.log, []string{"mounted"}) {
		t.Errorf("log = %v, want [mounted]", c.log)
	}
}
