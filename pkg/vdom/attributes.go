package vdom

import "fmt"

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// ClassList adds dynamic classes to Data.Class.
type ClassList []string

// StyleDecl sets one dynamic style property in Data.Style.
type StyleDecl struct {
	Property string
	Value    string
}

// DOMProp sets a host property (innerHTML, textContent, value).
type DOMProp struct {
	Name  string
	Value string
}

// RefName registers the element under a name in the refs module.
type RefName string

// Option mutates a node while it is being built.
type Option func(v *VNode)

func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf sets an arbitrary attribute.
func AttrOf(key, value string) Attr { return attr(key, value) }

// Global attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class adds dynamic classes.
func Class(classes ...string) ClassList { return ClassList(classes) }

// StaticClass sets the static class string, rendered before dynamic classes.
func StaticClass(class string) Option {
	return func(v *VNode) { v.data().StaticClass = class }
}

// Style sets a dynamic style property.
func Style(property, value string) StyleDecl {
	return StyleDecl{Property: property, Value: value}
}

// StaticStyle sets a static style property.
func StaticStyle(property, value string) Option {
	return func(v *VNode) {
		d := v.data()
		if d.StaticStyle == nil {
			d.StaticStyle = make(map[string]string)
		}
		d.StaticStyle[property] = value
	}
}

// Data sets a data-* attribute.
func Data_(key, value string) Attr { return attr("data-"+key, value) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Value sets the value attribute.
func Value(value string) Attr { return attr("value", value) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", "") }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Key creates a key for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}

// Ref registers the element in the refs module under name.
func Ref(name string) RefName { return RefName(name) }

// InnerHTML sets raw inner HTML on the element.
func InnerHTML(html string) DOMProp { return DOMProp{Name: "innerHTML", Value: html} }

// TextContent sets the text content property of the element.
func TextContent(text string) DOMProp { return DOMProp{Name: "textContent", Value: text} }

// PropValue sets the value property of a form control.
func PropValue(value string) DOMProp { return DOMProp{Name: "value", Value: value} }

// Verbatim marks the element as a verbatim (pre) subtree.
func Verbatim() Option {
	return func(v *VNode) { v.data().Pre = true }
}

// Static marks the node as a hoisted static subtree.
func Static() Option {
	return func(v *VNode) { v.IsStatic = true }
}

// Once marks the node as rendered once.
func Once() Option {
	return func(v *VNode) { v.IsOnce = true }
}

// Namespace overrides the element namespace.
func Namespace(ns string) Option {
	return func(v *VNode) { v.NS = ns }
}

// Scoped sets the rendering context of the node.
func Scoped(ctx Context) Option {
	return func(v *VNode) { v.Context = ctx }
}

// Use binds a directive.
func Use(name string, value any, def *DirectiveDef) *Directive {
	return &Directive{Name: name, Value: value, Def: def}
}

// WithTransition attaches enter/leave behavior.
func WithTransition(t *Transition) *Transition { return t }
