package modules

import (
	"strings"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Class renders StaticClass and Class into the class attribute.
type Class struct {
	ops AttrOps
}

// NewClass creates the class module.
func NewClass(ops AttrOps) *Class {
	return &Class{ops: ops}
}

// Create writes the class attribute of a new element.
func (m *Class) Create(old, v *vdom.VNode) {
	if cls := ClassFor(v); cls != "" {
		m.ops.SetAttribute(v.Elm, "class", cls)
	}
}

// Update rewrites the class attribute when the rendered value changed.
func (m *Class) Update(old, v *vdom.VNode) {
	if !hasClass(v) && !hasClass(old) {
		return
	}
	cls := ClassFor(v)
	if cls == ClassFor(old) {
		return
	}
	if cls == "" {
		m.ops.RemoveAttribute(v.Elm, "class")
		return
	}
	m.ops.SetAttribute(v.Elm, "class", cls)
}

func hasClass(v *vdom.VNode) bool {
	d := dataOf(v)
	return d.StaticClass != "" || len(d.Class) > 0
}

// RenderClass joins the static and dynamic classes of d.
func RenderClass(d *vdom.Data) string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, len(d.Class)+1)
	if d.StaticClass != "" {
		parts = append(parts, d.StaticClass)
	}
	for _, c := range d.Class {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// ClassFor renders the class of v merged with its component root and its
// placeholder parents, since they share one element.
func ClassFor(v *vdom.VNode) string {
	if v == nil {
		return ""
	}
	parts := []string{RenderClass(v.Data)}
	for c := v; c.ComponentInstance != nil; {
		c = c.ComponentInstance.Root()
		if c == nil {
			break
		}
		parts = append(parts, RenderClass(c.Data))
	}
	for p := v.Parent; p != nil; p = p.Parent {
		parts = append(parts, RenderClass(p.Data))
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
