package htmldom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

type convertConfig struct {
	keepWhitespace bool
	keyAttrs       []string
}

// ConvertOption configures ToVNode.
type ConvertOption func(*convertConfig)

// KeepWhitespace keeps whitespace-only text nodes.
func KeepWhitespace() ConvertOption {
	return func(c *convertConfig) {
		c.keepWhitespace = true
	}
}

// KeyAttrs sets the attributes read as node keys, in priority order.
// Default: "key", "data-key". The "key" attribute is never kept as an
// attribute.
func KeyAttrs(names ...string) ConvertOption {
	return func(c *convertConfig) {
		c.keyAttrs = names
	}
}

// ToVNode converts markup nodes into a virtual tree. The class and style
// attributes become static class and static style. Document and doctype
// nodes are skipped; ToVNode returns nil for them.
//
// Whitespace-only text is dropped unless KeepWhitespace is given, the same
// way TrimWhitespace trims real markup.
func ToVNode(n *html.Node, opts ...ConvertOption) *vdom.VNode {
	cfg := convertConfig{keyAttrs: []string{"key", "data-key"}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return convert(n, &cfg, cfg.keepWhitespace)
}

// convert mirrors TrimWhitespace: whitespace inside <pre> and <textarea>
// is always kept.
func convert(n *html.Node, cfg *convertConfig, keepWhitespace bool) *vdom.VNode {
	switch n.Type {
	case html.TextNode:
		if !keepWhitespace && strings.TrimSpace(n.Data) == "" {
			return nil
		}
		return vdom.Text(n.Data)
	case html.CommentNode:
		return vdom.Comment(n.Data)
	case html.ElementNode:
	default:
		return nil
	}

	v := &vdom.VNode{Kind: vdom.KindElement, Tag: n.Data, NS: n.Namespace}
	for _, a := range n.Attr {
		if a.Namespace != "" {
			continue
		}
		if isKeyAttr(cfg, a.Key) {
			if v.Key == "" {
				v.Key = a.Val
			}
			if a.Key == "key" {
				continue
			}
		}
		if v.Data == nil {
			v.Data = &vdom.Data{}
		}
		switch a.Key {
		case "class":
			v.Data.StaticClass = strings.Join(strings.Fields(a.Val), " ")
		case "style":
			v.Data.StaticStyle = parseStyle(a.Val)
		default:
			if v.Data.Attrs == nil {
				v.Data.Attrs = make(map[string]string)
			}
			v.Data.Attrs[a.Key] = a.Val
		}
	}
	keepWhitespace = keepWhitespace || n.Data == "pre" || n.Data == "textarea"
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c, cfg, keepWhitespace); child != nil {
			v.Children = append(v.Children, child)
		}
	}
	return v
}

func isKeyAttr(cfg *convertConfig, name string) bool {
	for _, k := range cfg.keyAttrs {
		if k == name {
			return true
		}
	}
	return false
}

// parseStyle parses "a: b; c: d" declarations.
func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop, val = strings.TrimSpace(prop), strings.TrimSpace(val)
		if prop != "" {
			out[prop] = val
		}
	}
	return out
}
