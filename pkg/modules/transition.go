package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// Transitions runs Data.Transition enter and leave callbacks. Leave keeps
// the element attached until it calls done.
type Transitions struct {
	leaving map[vdom.Node]bool
}

// NewTransitions creates the transition module.
func NewTransitions() *Transitions {
	return &Transitions{leaving: make(map[vdom.Node]bool)}
}

// Create runs the enter callback of a new element.
func (m *Transitions) Create(old, v *vdom.VNode) {
	m.enter(v)
}

// Activate re-runs enter for a reactivated kept-alive root.
func (m *Transitions) Activate(old, v *vdom.VNode) {
	m.enter(v)
}

// Remove starts the leave callback. rm completes when it calls done.
func (m *Transitions) Remove(v *vdom.VNode, rm *vdom.RemoveCallback) {
	t := dataOf(v).Transition
	if t == nil || t.Leave == nil {
		rm.Done()
		return
	}
	elm := v.Elm
	m.leaving[elm] = true
	called := false
	t.Leave(v, func() {
		if called {
			return
		}
		called = true
		delete(m.leaving, elm)
		rm.Done()
	})
}

// IsLeaving reports whether n is waiting for a leave callback.
func (m *Transitions) IsLeaving(n vdom.Node) bool {
	return m.leaving[n]
}

// enter runs Enter once the node is inserted. Nodes created as part of a
// larger inserted subtree do not enter on their own.
func (m *Transitions) enter(v *vdom.VNode) {
	t := dataOf(v).Transition
	if t == nil || t.Enter == nil || !v.IsRootInsert {
		return
	}
	mergeInsert(v, func(n *vdom.VNode) {
		t.Enter(n)
	})
}
