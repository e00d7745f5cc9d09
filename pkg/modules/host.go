package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// AttrOps sets and removes element attributes.
type AttrOps interface {
	SetAttribute(n vdom.Node, name, value string)
	RemoveAttribute(n vdom.Node, name string)
}

// PropOps sets host properties (innerHTML, textContent, value).
type PropOps interface {
	SetProperty(n vdom.Node, name, value string)
}

// EventOps binds listeners to real nodes. A node has at most one listener
// per event name.
type EventOps interface {
	AddEventListener(n vdom.Node, event string, fn vdom.Listener)
	RemoveEventListener(n vdom.Node, event string)
}

// Host is everything the default module set needs.
type Host interface {
	AttrOps
	PropOps
	EventOps
}
