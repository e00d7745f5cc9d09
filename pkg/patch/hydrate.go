package patch

import (
	"fmt"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// hydrate adopts elm and its descendants for v without creating nodes.
// It returns false on the first structural mismatch; the caller then
// renders the subtree from scratch.
func (p *Patcher) hydrate(elm vdom.Node, v *vdom.VNode, q *queue, inVPre bool) bool {
	if p.hyd == nil {
		return false
	}
	data := v.Data
	inVPre = inVPre || (data != nil && data.Pre)
	v.Elm = elm

	if v.IsComment && v.AsyncFactory != nil {
		v.IsAsyncPlaceholder = true
		return true
	}
	if !p.assertNodeMatch(elm, v, inVPre) {
		return false
	}
	if data != nil {
		if h := data.Hook; h != nil && h.Init != nil {
			h.Init(v, true)
		}
		if v.ComponentInstance != nil {
			// The child component hydrated itself.
			p.initComponent(v, q)
			p.stats.Hydrated++
			return true
		}
	}

	if !v.IsElement() {
		if p.hyd.NodeText(elm) != v.Text {
			p.hyd.SetNodeText(elm, v.Text)
		}
		p.stats.Hydrated++
		return true
	}

	if len(v.Children) > 0 {
		if p.hyd.FirstChild(elm) == nil {
			// Empty element: create the children.
			p.createChildren(v, q)
		} else if html, ok := innerHTMLOf(v); ok {
			if client := p.hyd.InnerHTML(elm); html != client {
				p.hydrationBail("H042", v, fmt.Sprintf("server innerHTML: %q, client innerHTML: %q", client, html))
				return false
			}
		} else if !p.hydrateChildren(elm, v, q, inVPre) {
			return false
		}
	} else if v.Text != "" && !p.holdsText(elm, v.Text) {
		// Element text is not diffed again while it stays the same.
		p.ops.SetTextContent(elm, v.Text)
	}

	if data != nil {
		if needsCreateHooks(data) {
			p.invokeCreateHooks(v, q)
		} else if len(data.Class) > 0 && p.cfg.TrackClassBinding != nil {
			p.cfg.TrackClassBinding(v)
		}
	}
	p.stats.Hydrated++
	return true
}

// hydrateChildren pairs real children with virtual children one for one.
func (p *Patcher) hydrateChildren(elm vdom.Node, v *vdom.VNode, q *queue, inVPre bool) bool {
	matched := 0
	child := p.hyd.FirstChild(elm)
	for _, c := range v.Children {
		if child == nil || !p.hydrate(child, c, q, inVPre) {
			break
		}
		matched++
		child = p.ops.NextSibling(child)
	}
	if matched == len(v.Children) && child == nil {
		return true
	}
	p.hydrationBail("H043", v, fmt.Sprintf("mismatching child nodes vs. virtual nodes: matched %d of %d children of <%s>",
		matched, len(v.Children), p.ops.TagName(elm)))
	return false
}

// holdsText reports whether the only child of elm is a text node with text.
func (p *Patcher) holdsText(elm vdom.Node, text string) bool {
	child := p.hyd.FirstChild(elm)
	return child != nil &&
		p.hyd.NodeType(child) == TextNode &&
		p.hyd.NodeText(child) == text &&
		p.ops.NextSibling(child) == nil
}

// assertNodeMatch checks that a real node can stand for v: same tag for
// elements, same kind for text and comments. Component placeholders match
// any element.
func (p *Patcher) assertNodeMatch(node vdom.Node, v *vdom.VNode, inVPre bool) bool {
	if v.IsElement() {
		if v.Kind == vdom.KindComponent || strings.HasPrefix(v.Tag, p.cfg.ComponentTagPrefix) {
			return true
		}
		if p.cfg.DevMode && p.isUnknownElement(v, inVPre) {
			p.reportUnknownElement(v)
			return false
		}
		if p.hyd.NodeType(node) == ElementNode && strings.EqualFold(v.Tag, p.ops.TagName(node)) {
			return true
		}
		if p.cfg.DevMode {
			p.report(errors.New("H040").WithTag(v.Tag).WithKey(v.Key).
				WithDetailf("server rendered <%s>, client expected <%s>", strings.ToLower(p.ops.TagName(node)), v.Tag))
		}
		return false
	}

	want := TextNode
	if v.IsComment {
		want = CommentNode
	}
	if p.hyd.NodeType(node) == want {
		return true
	}
	if p.cfg.DevMode {
		p.report(errors.New("H041").WithKey(v.Key).
			WithDetailf("server node type %d, client expected %d", p.hyd.NodeType(node), want))
	}
	return false
}

func innerHTMLOf(v *vdom.VNode) (string, bool) {
	if v.Data == nil || v.Data.DOMProps == nil {
		return "", false
	}
	html, ok := v.Data.DOMProps["innerHTML"]
	return html, ok
}

// needsCreateHooks reports whether data holds bindings the server did not
// already render. Attributes and classes need no client hook.
func needsCreateHooks(d *vdom.Data) bool {
	return len(d.DOMProps) > 0 ||
		len(d.Style) > 0 ||
		len(d.On) > 0 ||
		len(d.Directives) > 0 ||
		d.Ref != "" ||
		d.Transition != nil ||
		d.Hook != nil ||
		d.Pre ||
		d.KeepAlive
}
