package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// Refs is a name to node registry fed by Data.Ref. A ref on a component
// placeholder resolves to the component instance.
type Refs struct {
	refs map[string]any
}

// NewRefs creates the refs module.
func NewRefs() *Refs {
	return &Refs{refs: make(map[string]any)}
}

// Lookup returns the element or component instance registered under name.
func (m *Refs) Lookup(name string) (any, bool) {
	r, ok := m.refs[name]
	return r, ok
}

// Len returns the number of registered refs.
func (m *Refs) Len() int {
	return len(m.refs)
}

// Create registers the ref of a new node.
func (m *Refs) Create(old, v *vdom.VNode) {
	m.RegisterRef(v)
}

// Update moves a ref whose name or node changed.
func (m *Refs) Update(old, v *vdom.VNode) {
	oldRef, ref := dataOf(old).Ref, dataOf(v).Ref
	if oldRef != ref {
		m.unregister(old)
		m.RegisterRef(v)
		return
	}
	if ref != "" && m.refs[ref] != refValue(v) {
		m.RegisterRef(v)
	}
}

// Destroy drops the ref of a torn down node.
func (m *Refs) Destroy(v *vdom.VNode) {
	m.unregister(v)
}

// RegisterRef records v under its ref name.
func (m *Refs) RegisterRef(v *vdom.VNode) {
	if ref := dataOf(v).Ref; ref != "" {
		m.refs[ref] = refValue(v)
	}
}

func (m *Refs) unregister(v *vdom.VNode) {
	ref := dataOf(v).Ref
	if ref == "" {
		return
	}
	if m.refs[ref] == refValue(v) {
		delete(m.refs, ref)
	}
}

func refValue(v *vdom.VNode) any {
	if v.ComponentInstance != nil {
		return v.ComponentInstance
	}
	return v.Elm
}
