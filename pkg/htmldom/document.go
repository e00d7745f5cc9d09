package htmldom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Document owns the listeners of a tree of *html.Node.
type Document struct {
	listeners map[*html.Node]map[string]vdom.Listener
}

// New creates an empty Document.
func New() *Document {
	return &Document{listeners: make(map[*html.Node]map[string]vdom.Listener)}
}

// node unwraps a vdom.Node. Foreign values unwrap to nil.
func node(n vdom.Node) *html.Node {
	h, _ := n.(*html.Node)
	return h
}

// wrap returns an untyped nil for a nil node.
func wrap(h *html.Node) vdom.Node {
	if h == nil {
		return nil
	}
	return h
}

// CreateElement creates a detached HTML element.
func (d *Document) CreateElement(tag string) vdom.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

// CreateElementNS creates a detached element in namespace ns ("svg", "math").
func (d *Document) CreateElementNS(ns, tag string) vdom.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag)), Namespace: ns}
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(text string) vdom.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(text string) vdom.Node {
	return &html.Node{Type: html.CommentNode, Data: text}
}

// InsertBefore moves child under parent before ref, detaching it first.
// A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref vdom.Node) {
	p, c, r := node(parent), node(child), node(ref)
	if p == nil || c == nil || c == r {
		return
	}
	detach(c)
	if r == nil || r.Parent != p {
		p.AppendChild(c)
		return
	}
	p.InsertBefore(c, r)
}

// AppendChild moves child to the end of parent.
func (d *Document) AppendChild(parent, child vdom.Node) {
	d.InsertBefore(parent, child, nil)
}

// RemoveChild detaches child if parent owns it.
func (d *Document) RemoveChild(parent, child vdom.Node) {
	p, c := node(parent), node(child)
	if p == nil || c == nil || c.Parent != p {
		return
	}
	p.RemoveChild(c)
}

// ParentNode returns the parent of n, or nil.
func (d *Document) ParentNode(n vdom.Node) vdom.Node {
	if h := node(n); h != nil {
		return wrap(h.Parent)
	}
	return nil
}

// NextSibling returns the next sibling of n, or nil.
func (d *Document) NextSibling(n vdom.Node) vdom.Node {
	if h := node(n); h != nil {
		return wrap(h.NextSibling)
	}
	return nil
}

// TagName returns the tag name of an element, lower case as parsed.
func (d *Document) TagName(n vdom.Node) string {
	if h := node(n); h != nil && h.Type == html.ElementNode {
		return h.Data
	}
	return ""
}

// SetTextContent replaces the children of an element with one text node,
// or none for empty text. On text and comment nodes it sets the node text.
func (d *Document) SetTextContent(n vdom.Node, text string) {
	h := node(n)
	if h == nil {
		return
	}
	if h.Type != html.ElementNode {
		h.Data = text
		return
	}
	removeChildren(h)
	if text != "" {
		h.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// SetStyleScope marks n with the scope id attribute.
func (d *Document) SetStyleScope(n vdom.Node, scopeID string) {
	d.SetAttribute(n, scopeID, "")
}

// Hydration

// NodeType returns the DOM node type constant of n.
func (d *Document) NodeType(n vdom.Node) int {
	h := node(n)
	if h == nil {
		return 0
	}
	switch h.Type {
	case html.ElementNode:
		return 1
	case html.TextNode:
		return 3
	case html.CommentNode:
		return 8
	case html.DocumentNode:
		return 9
	}
	return 0
}

// FirstChild returns the first child of n, or nil.
func (d *Document) FirstChild(n vdom.Node) vdom.Node {
	if h := node(n); h != nil {
		return wrap(h.FirstChild)
	}
	return nil
}

// InnerHTML serializes the children of n.
func (d *Document) InnerHTML(n vdom.Node) string {
	return InnerHTML(node(n))
}

// NodeText returns the text of a text or comment node.
func (d *Document) NodeText(n vdom.Node) string {
	if h := node(n); h != nil && h.Type != html.ElementNode {
		return h.Data
	}
	return ""
}

// SetNodeText sets the text of a text or comment node.
func (d *Document) SetNodeText(n vdom.Node, text string) {
	if h := node(n); h != nil && h.Type != html.ElementNode {
		h.Data = text
	}
}

// HasAttribute reports whether element n carries name.
func (d *Document) HasAttribute(n vdom.Node, name string) bool {
	_, ok := Attr(node(n), name)
	return ok
}

// Attributes

// SetAttribute sets or replaces an attribute.
func (d *Document) SetAttribute(n vdom.Node, name, value string) {
	h := node(n)
	if h == nil {
		return
	}
	for i := range h.Attr {
		if h.Attr[i].Namespace == "" && h.Attr[i].Key == name {
			h.Attr[i].Val = value
			return
		}
	}
	h.Attr = append(h.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttribute removes an attribute if present.
func (d *Document) RemoveAttribute(n vdom.Node, name string) {
	h := node(n)
	if h == nil {
		return
	}
	kept := h.Attr[:0]
	for _, a := range h.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	h.Attr = kept
}

// SetProperty handles innerHTML, textContent and value. Other properties
// are reflected as attributes.
func (d *Document) SetProperty(n vdom.Node, name, value string) {
	h := node(n)
	if h == nil {
		return
	}
	switch name {
	case "innerHTML":
		removeChildren(h)
		nodes, err := html.ParseFragment(strings.NewReader(value), h)
		if err != nil {
			h.AppendChild(&html.Node{Type: html.TextNode, Data: value})
			return
		}
		for _, c := range nodes {
			h.AppendChild(c)
		}
	case "textContent":
		d.SetTextContent(h, value)
	case "value":
		if h.Data == "textarea" {
			d.SetTextContent(h, value)
			return
		}
		d.SetAttribute(h, "value", value)
	default:
		d.SetAttribute(h, name, value)
	}
}

// Events

// AddEventListener registers fn for event on n, replacing any previous one.
func (d *Document) AddEventListener(n vdom.Node, event string, fn vdom.Listener) {
	h := node(n)
	if h == nil {
		return
	}
	m := d.listeners[h]
	if m == nil {
		m = make(map[string]vdom.Listener)
		d.listeners[h] = m
	}
	m[event] = fn
}

// RemoveEventListener removes the listener for event on n.
func (d *Document) RemoveEventListener(n vdom.Node, event string) {
	h := node(n)
	if m := d.listeners[h]; m != nil {
		delete(m, event)
		if len(m) == 0 {
			delete(d.listeners, h)
		}
	}
}

// Listeners returns the number of nodes with at least one listener.
func (d *Document) Listeners() int {
	return len(d.listeners)
}

// Dispatch fires event at target and bubbles it to the ancestors. It
// returns the number of listeners called.
func (d *Document) Dispatch(target *html.Node, event vdom.Event) int {
	event.Target = target
	calls := 0
	for cur := target; cur != nil; cur = cur.Parent {
		if fn := d.listeners[cur][event.Type]; fn != nil {
			fn(event)
			calls++
		}
	}
	return calls
}

func detach(h *html.Node) {
	if h.Parent != nil {
		h.Parent.RemoveChild(h)
	}
}

func removeChildren(h *html.Node) {
	for c := h.FirstChild; c != nil; {
		next := c.NextSibling
		h.RemoveChild(c)
		c = next
	}
}
