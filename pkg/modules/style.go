package modules

import (
	"sort"
	"strings"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Style renders StaticStyle and Style into the style attribute.
type Style struct {
	ops AttrOps
}

// NewStyle creates the style module.
func NewStyle(ops AttrOps) *Style {
	return &Style{ops: ops}
}

// Create writes the style attribute of a new element.
func (m *Style) Create(old, v *vdom.VNode) {
	if s := RenderStyle(v.Data); s != "" {
		m.ops.SetAttribute(v.Elm, "style", s)
	}
}

// Update rewrites the style attribute when the rendered value changed.
func (m *Style) Update(old, v *vdom.VNode) {
	od, d := dataOf(old), dataOf(v)
	if len(d.Style) == 0 && len(d.StaticStyle) == 0 && len(od.Style) == 0 && len(od.StaticStyle) == 0 {
		return
	}
	s := RenderStyle(d)
	if s == RenderStyle(od) {
		return
	}
	if s == "" {
		m.ops.RemoveAttribute(v.Elm, "style")
		return
	}
	m.ops.SetAttribute(v.Elm, "style", s)
}

// RenderStyle renders d's static style overridden by its dynamic style as
// "prop:value;" pairs sorted by property.
func RenderStyle(d *vdom.Data) string {
	if d == nil || (len(d.StaticStyle) == 0 && len(d.Style) == 0) {
		return ""
	}
	merged := make(map[string]string, len(d.StaticStyle)+len(d.Style))
	for k, v := range d.StaticStyle {
		merged[k] = v
	}
	for k, v := range d.Style {
		merged[k] = v
	}
	props := make([]string, 0, len(merged))
	for k, v := range merged {
		if v != "" {
			props = append(props, k)
		}
	}
	sort.Strings(props)

	var b strings.Builder
	for _, k := range props {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(merged[k])
		b.WriteByte(';')
	}
	return b.String()
}
