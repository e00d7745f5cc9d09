package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// Attrs keeps element attributes in sync with Data.Attrs.
type Attrs struct {
	ops AttrOps
}

// NewAttrs creates the attrs module.
func NewAttrs(ops AttrOps) *Attrs {
	return &Attrs{ops: ops}
}

// Create and Update diff the attributes of v against old.
func (m *Attrs) Create(old, v *vdom.VNode) { m.update(old, v) }
func (m *Attrs) Update(old, v *vdom.VNode) { m.update(old, v) }

func (m *Attrs) update(old, v *vdom.VNode) {
	oldAttrs, attrs := dataOf(old).Attrs, dataOf(v).Attrs
	if len(oldAttrs) == 0 && len(attrs) == 0 {
		return
	}
	elm := v.Elm
	for key, cur := range attrs {
		if prev, ok := oldAttrs[key]; !ok || prev != cur {
			m.ops.SetAttribute(elm, key, cur)
		}
	}
	for key := range oldAttrs {
		if _, ok := attrs[key]; !ok {
			m.ops.RemoveAttribute(elm, key)
		}
	}
}
