package vdom

import "strings"

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, ClassList, StyleDecl, EventHandler,
// DOMProp, *Directive, RefName, *Hooks, *Transition, Option, *VNode,
// []*VNode, or string (text child).
//
// Data is only allocated when at least one binding is given: the equality
// oracle distinguishes nodes with and without data.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
		NS:   NamespaceOf(tag),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case ClassList:
			d := node.data()
			d.Class = append(d.Class, v...)

		case StyleDecl:
			d := node.data()
			if d.Style == nil {
				d.Style = make(map[string]string)
			}
			d.Style[v.Property] = v.Value

		case EventHandler:
			d := node.data()
			if d.On == nil {
				d.On = make(map[string]Listener)
			}
			d.On[v.Event] = v.Handler

		case DOMProp:
			d := node.data()
			if d.DOMProps == nil {
				d.DOMProps = make(map[string]string)
			}
			d.DOMProps[v.Name] = v.Value

		case *Directive:
			if v != nil {
				d := node.data()
				d.Directives = append(d.Directives, v)
			}

		case RefName:
			node.data().Ref = string(v)

		case *Hooks:
			if v != nil {
				node.data().Hook = v
			}

		case *Transition:
			if v != nil {
				node.data().Transition = v
			}

		case Option:
			v(node)

		case *VNode:
			// Child node
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			// Multiple children
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))
		}
	}

	if node.NS != "" {
		applyNS(node, node.NS)
	}
	return node
}

// applyNS propagates an element namespace to descendants that have none.
// Children of foreignObject go back to the HTML namespace.
func applyNS(v *VNode, ns string) {
	v.NS = ns
	if strings.EqualFold(v.Tag, "foreignObject") {
		return
	}
	for _, child := range v.Children {
		if child.Kind == KindElement && child.NS == "" {
			applyNS(child, ns)
		}
	}
}

func (v *VNode) data() *Data {
	if v.Data == nil {
		v.Data = &Data{}
	}
	return v.Data
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		v.Key = a.Value
		return
	}
	d := v.data()
	if d.Attrs == nil {
		d.Attrs = make(map[string]string)
	}
	d.Attrs[a.Key] = a.Value
}

// H creates an element with an arbitrary tag.
func H(tag string, args ...any) *VNode { return createElement(tag, args) }

// Document structure elements

func Html(args ...any) *VNode  { return createElement("html", args) }
func Head(args ...any) *VNode  { return createElement("head", args) }
func Body(args ...any) *VNode  { return createElement("body", args) }
func Title(args ...any) *VNode { return createElement("title", args) }

// Content sectioning elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Article(args ...any) *VNode { return createElement("article", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Pre(args ...any) *VNode  { return createElement("pre", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Ol(args ...any) *VNode   { return createElement("ol", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }
func Hr(args ...any) *VNode   { return createElement("hr", args) }

// Inline text semantics

func A(args ...any) *VNode      { return createElement("a", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func Code(args ...any) *VNode   { return createElement("code", args) }
func Br(args ...any) *VNode     { return createElement("br", args) }

// Form elements

func Form(args ...any) *VNode     { return createElement("form", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option_(args ...any) *VNode  { return createElement("option", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }

// Table elements

func Table(args ...any) *VNode { return createElement("table", args) }
func Tbody(args ...any) *VNode { return createElement("tbody", args) }
func Tr(args ...any) *VNode    { return createElement("tr", args) }
func Td(args ...any) *VNode    { return createElement("td", args) }

// Media elements

func Img(args ...any) *VNode { return createElement("img", args) }
func Svg(args ...any) *VNode { return createElement("svg", args) }

// Scripting elements

func Template(args ...any) *VNode { return createElement("template", args) }
func Slot(args ...any) *VNode     { return createElement("slot", args) }

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *VNode {
	return createElement(tag, args)
}
