package patch

import "github.com/vango-dev/reconcile/pkg/vdom"

// Node types reported by HydrationOps.NodeType. The values follow the DOM.
const (
	ElementNode = 1
	TextNode    = 3
	CommentNode = 8
)

// NodeOps is the set of host operations the engine needs to build and
// mutate the target tree.
//
// Methods returning a vdom.Node must return an untyped nil for an absent
// node, never a typed nil pointer wrapped in the interface.
type NodeOps interface {
	CreateElement(tag string) vdom.Node
	CreateElementNS(ns, tag string) vdom.Node
	CreateTextNode(text string) vdom.Node
	CreateComment(text string) vdom.Node

	// InsertBefore inserts child before ref. A nil ref appends. A child that
	// is already attached is moved.
	InsertBefore(parent, child, ref vdom.Node)
	AppendChild(parent, child vdom.Node)
	RemoveChild(parent, child vdom.Node)

	ParentNode(n vdom.Node) vdom.Node
	NextSibling(n vdom.Node) vdom.Node
	TagName(n vdom.Node) string

	// SetTextContent replaces all children of n with a single text node, or
	// sets the data of a text or comment node.
	SetTextContent(n vdom.Node, text string)

	// SetStyleScope marks n with a style scope id attribute.
	SetStyleScope(n vdom.Node, scopeID string)
}

// HydrationOps are the extra read operations needed to adopt
// server-rendered nodes.
type HydrationOps interface {
	NodeType(n vdom.Node) int
	FirstChild(n vdom.Node) vdom.Node
	InnerHTML(n vdom.Node) string
	NodeText(n vdom.Node) string
	SetNodeText(n vdom.Node, text string)
	HasAttribute(n vdom.Node, name string) bool
	RemoveAttribute(n vdom.Node, name string)
}

// LeaveTracker is implemented by hosts that know whether a node is in the
// middle of a leave transition.
type LeaveTracker interface {
	IsLeaving(n vdom.Node) bool
}
