// Package vdom provides the virtual tree model consumed by the reconciler.
//
// A VNode describes one tree position: an element, a text node, a comment or
// a component placeholder. Trees are rebuilt on every render pass; the
// reconciler in package patch writes the Elm field as it materializes nodes.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"), Key(item.ID),
//	    H1("Title"),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// Data is allocated only when a binding is given, because the equality
// oracle treats "has data" as part of a node's identity.
//
// # Equality
//
// SameVNode and Equality.Same decide whether a new node can be patched onto
// an old one. Input elements compare their type attribute, with the text-like
// input types treated as interchangeable; the set is configurable through
// NewEquality.
package vdom
