package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// invoker is the stable listener registered with the host. Updates swap fn
// without touching the host.
type invoker struct {
	fn vdom.Listener
}

func (inv *invoker) call(e vdom.Event) {
	if inv.fn != nil {
		inv.fn(e)
	}
}

// Events binds Data.On listeners through invokers.
type Events struct {
	ops      EventOps
	invokers map[vdom.Node]map[string]*invoker
}

// NewEvents creates the events module.
func NewEvents(ops EventOps) *Events {
	return &Events{ops: ops, invokers: make(map[vdom.Node]map[string]*invoker)}
}

// Create and Update bind listeners through invokers. A changed handler
// is swapped inside its invoker without touching the host.
func (m *Events) Create(old, v *vdom.VNode) { m.update(old, v) }
func (m *Events) Update(old, v *vdom.VNode) { m.update(old, v) }

// Destroy forgets the invokers of a torn down element.
func (m *Events) Destroy(v *vdom.VNode) {
	bound, ok := m.invokers[v.Elm]
	if !ok || len(dataOf(v).On) == 0 {
		return
	}
	for name := range bound {
		m.ops.RemoveEventListener(v.Elm, name)
	}
	delete(m.invokers, v.Elm)
}

func (m *Events) update(old, v *vdom.VNode) {
	on := dataOf(v).On
	oldOn := dataOf(old).On
	if len(on) == 0 && len(oldOn) == 0 {
		return
	}
	elm := v.Elm
	bound := m.invokers[elm]
	if bound == nil {
		bound = make(map[string]*invoker)
		m.invokers[elm] = bound
	}
	for name, fn := range on {
		if inv, ok := bound[name]; ok {
			inv.fn = fn
			continue
		}
		inv := &invoker{fn: fn}
		bound[name] = inv
		m.ops.AddEventListener(elm, name, inv.call)
	}
	for name := range bound {
		if _, ok := on[name]; !ok {
			m.ops.RemoveEventListener(elm, name)
			delete(bound, name)
		}
	}
	if len(bound) == 0 {
		delete(m.invokers, elm)
	}
}

// Bound returns the number of elements with listeners.
func (m *Events) Bound() int {
	return len(m.invokers)
}
