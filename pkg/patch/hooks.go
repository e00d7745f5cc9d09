package patch

import "github.com/vango-dev/reconcile/pkg/vdom"

// Module is a feature module. It implements any subset of CreateHook,
// ActivateHook, UpdateHook, RemoveHook, DestroyHook and RefRegistrar.
type Module any

// CreateHook runs after an element and its children are created, before the
// element is inserted. old is an empty node.
type CreateHook interface {
	Create(old, v *vdom.VNode)
}

// ActivateHook runs when a kept-alive component is reinserted.
type ActivateHook interface {
	Activate(old, v *vdom.VNode)
}

// UpdateHook runs when a node is patched in place.
type UpdateHook interface {
	Update(old, v *vdom.VNode)
}

// RemoveHook runs when a node is about to be detached. It must call
// rm.Done exactly once, now or later.
type RemoveHook interface {
	Remove(v *vdom.VNode, rm *vdom.RemoveCallback)
}

// DestroyHook runs for every node of a subtree being torn down.
type DestroyHook interface {
	Destroy(v *vdom.VNode)
}

// RefRegistrar registers a node's ref. It is the only module behavior run
// for a component whose root is not an element.
type RefRegistrar interface {
	RegisterRef(v *vdom.VNode)
}

// hookTable holds the callbacks of each kind in module order. It is built
// once by New and never mutated.
type hookTable struct {
	create   []CreateHook
	activate []ActivateHook
	update   []UpdateHook
	remove   []RemoveHook
	destroy  []DestroyHook
	refs     []RefRegistrar
}

func buildHooks(modules []Module) hookTable {
	var t hookTable
	for _, m := range modules {
		if h, ok := m.(CreateHook); ok {
			t.create = append(t.create, h)
		}
		if h, ok := m.(ActivateHook); ok {
			t.activate = append(t.activate, h)
		}
		if h, ok := m.(UpdateHook); ok {
			t.update = append(t.update, h)
		}
		if h, ok := m.(RemoveHook); ok {
			t.remove = append(t.remove, h)
		}
		if h, ok := m.(DestroyHook); ok {
			t.destroy = append(t.destroy, h)
		}
		if h, ok := m.(RefRegistrar); ok {
			t.refs = append(t.refs, h)
		}
	}
	return t
}

// emptyNode is the old node passed to create and activate hooks.
// Hooks must not modify it.
var emptyNode = vdom.Empty()
