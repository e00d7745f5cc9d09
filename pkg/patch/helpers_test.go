package patch_test

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/reconcile/pkg/htmldom"
	"github.com/vango-dev/reconcile/pkg/modules"
	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// countingHost counts the host operations issued by the engine.
type countingHost struct {
	*htmldom.Document
	created int
	inserts int
	removes int
}

func (h *countingHost) CreateElement(tag string) vdom.Node {
	h.created++
	return h.Document.CreateElement(tag)
}

func (h *countingHost) CreateElementNS(ns, tag string) vdom.Node {
	h.created++
	return h.Document.CreateElementNS(ns, tag)
}

func (h *countingHost) CreateTextNode(text string) vdom.Node {
	h.created++
	return h.Document.CreateTextNode(text)
}

func (h *countingHost) CreateComment(text string) vdom.Node {
	h.created++
	return h.Document.CreateComment(text)
}

func (h *countingHost) InsertBefore(parent, child, ref vdom.Node) {
	h.inserts++
	h.Document.InsertBefore(parent, child, ref)
}

func (h *countingHost) AppendChild(parent, child vdom.Node) {
	h.inserts++
	h.Document.AppendChild(parent, child)
}

func (h *countingHost) RemoveChild(parent, child vdom.Node) {
	h.removes++
	h.Document.RemoveChild(parent, child)
}

func (h *countingHost) reset() {
	h.created, h.inserts, h.removes = 0, 0, 0
}

type harness struct {
	t       *testing.T
	host    *countingHost
	mods    *modules.Set
	p       *patch.Patcher
	diags   []*patch.Diagnostic
	reports []patch.PatchReport
}

func newHarness(t *testing.T, opts ...patch.Option) *harness {
	t.Helper()
	h := &harness{t: t, host: &countingHost{Document: htmldom.New()}}
	h.mods = modules.NewSet(h.host)
	opts = append([]patch.Option{
		patch.WithReporter(func(d *patch.Diagnostic) { h.diags = append(h.diags, d) }),
		patch.WithObserver(patch.ObserverFunc(func(r patch.PatchReport) { h.reports = append(h.reports, r) })),
	}, opts...)
	h.p = patch.New(h.host, h.mods.Modules(), opts...)
	return h
}

// mount renders v into a fresh container and returns the container.
func (h *harness) mount(v *vdom.VNode) *html.Node {
	h.t.Helper()
	container, err := htmldom.Parse("<div></div>")
	if err != nil {
		h.t.Fatalf("Parse() error = %v", err)
	}
	placeholder := container.FirstChild
	elm := h.p.Patch(placeholder, v, false, false)
	if elm == nil {
		h.t.Fatal("Patch() returned nil")
	}
	h.host.reset()
	h.diags = nil
	return container
}

func (h *harness) codes() []string {
	var codes []string
	for _, d := range h.diags {
		codes = append(codes, d.Code)
	}
	return codes
}

func innerHTML(n *html.Node) string {
	return htmldom.InnerHTML(n)
}

func outerHTML(t *testing.T, n vdom.Node) string {
	t.Helper()
	s, err := htmldom.Render(n.(*html.Node))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return s
}

// item is a keyed list item whose text comes from the element itself.
func item(key string) *vdom.VNode {
	return &vdom.VNode{Kind: vdom.KindElement, Tag: "li", Key: key, Text: key}
}

func list(keys ...string) *vdom.VNode {
	children := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		children[i] = item(k)
	}
	return vdom.Ul(children)
}

func elms(v *vdom.VNode) map[string]vdom.Node {
	m := make(map[string]vdom.Node)
	for _, c := range v.Children {
		m[c.Key] = c.Elm
	}
	return m
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
