package main

import (
	"sync/atomic"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// counter is the page served when no markup is given. The count is shared
// by every session.
type counter struct {
	n atomic.Int64
}

func newCounter() *counter { return &counter{} }

func (c *counter) view() *vdom.VNode {
	return vdom.Div(vdom.ID("app"),
		vdom.Button(vdom.ID("inc"), vdom.OnClick(func(vdom.Event) { c.n.Add(1) }), "+"),
		vdom.Span(vdom.Textf("count %d", c.n.Load())),
		vdom.Button(vdom.ID("reset"), vdom.OnClick(func(vdom.Event) { c.n.Store(0) }), "reset"),
	)
}
