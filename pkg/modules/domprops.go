package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// DOMProps keeps host properties in sync with Data.DOMProps.
type DOMProps struct {
	ops PropOps
}

// NewDOMProps creates the DOM properties module.
func NewDOMProps(ops PropOps) *DOMProps {
	return &DOMProps{ops: ops}
}

// Create and Update set the host properties that differ from old.
func (m *DOMProps) Create(old, v *vdom.VNode) { m.update(old, v) }
func (m *DOMProps) Update(old, v *vdom.VNode) { m.update(old, v) }

func (m *DOMProps) update(old, v *vdom.VNode) {
	oldProps, props := dataOf(old).DOMProps, dataOf(v).DOMProps
	if len(oldProps) == 0 && len(props) == 0 {
		return
	}
	for key := range oldProps {
		if _, ok := props[key]; !ok {
			m.ops.SetProperty(v.Elm, key, "")
		}
	}
	for key, cur := range props {
		if prev, ok := oldProps[key]; ok && prev == cur && !isCreate(old) {
			continue
		}
		m.ops.SetProperty(v.Elm, key, cur)
	}
}
