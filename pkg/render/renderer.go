package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/reconcile/pkg/modules"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// DefaultServerRenderedAttr is the marker the patch entry looks for on a
// real root before hydrating it.
const DefaultServerRenderedAttr = "data-server-rendered"

// ErrNoInstance is returned for a component placeholder that was never
// instantiated.
var ErrNoInstance = errors.New("render: component has no instance")

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Indentation adds whitespace text
	// nodes, so pretty output does not hydrate against the same tree.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// ServerRenderedAttr is written on the root element. Defaults to
	// DefaultServerRenderedAttr.
	ServerRenderedAttr string

	// OmitMarker disables the root marker.
	OmitMarker bool
}

// Renderer handles server-side rendering of VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.ServerRenderedAttr == "" {
		config.ServerRenderedAttr = DefaultServerRenderedAttr
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer. The first
// element rendered carries the server-rendered marker.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0, !r.config.OmitMarker)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int, root bool) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth, root)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindComment:
		_, err := fmt.Fprintf(w, "<!--%s-->", escapeComment(node.Text))
		return err
	case vdom.KindComponent:
		return r.renderComponent(w, node, depth, root)
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int, root bool) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if root {
		if _, err := fmt.Fprintf(w, ` %s="true"`, r.config.ServerRenderedAttr); err != nil {
			return err
		}
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		r.newline(w)
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	props := propsOf(node)
	switch {
	case props["innerHTML"] != "":
		if _, err := io.WriteString(w, props["innerHTML"]); err != nil {
			return err
		}
	case props["textContent"] != "":
		if _, err := io.WriteString(w, escapeHTML(props["textContent"])); err != nil {
			return err
		}
	case tag == "textarea" && props["value"] != "":
		if _, err := io.WriteString(w, escapeHTML(props["value"])); err != nil {
			return err
		}
	case len(node.Children) == 0:
		if _, err := io.WriteString(w, escapeHTML(node.Text)); err != nil {
			return err
		}
	default:
		hasBlockChildren := !isInlineElement(tag) && hasElementChild(node)
		if r.config.Pretty && hasBlockChildren {
			r.newline(w)
		}
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth+1, false); err != nil {
				return err
			}
		}
		if r.config.Pretty && hasBlockChildren {
			r.writeIndent(w, depth)
		}
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	r.newline(w)
	return nil
}

// renderComponent renders the root the component instance last rendered.
// The placeholder's classes are merged in by the class rendering of the
// root through its Parent chain.
func (r *Renderer) renderComponent(w io.Writer, node *vdom.VNode, depth int, root bool) error {
	if node.ComponentInstance == nil {
		return fmt.Errorf("%w: <%s>", ErrNoInstance, node.Tag)
	}
	return r.renderNode(w, node.ComponentInstance.Root(), depth, root)
}

// renderAttributes renders attributes sorted by name, then class, style
// and scope ids.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if node.Data != nil {
		attrs := node.Data.Attrs
		keys := make([]string, 0, len(attrs))
		for key := range attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if err := writeAttr(w, key, attrs[key]); err != nil {
				return err
			}
		}
		if value, ok := node.Data.DOMProps["value"]; ok && node.Tag != "textarea" {
			if _, set := attrs["value"]; !set {
				if err := writeAttr(w, "value", value); err != nil {
					return err
				}
			}
		}
	}

	if cls := modules.ClassFor(node); cls != "" {
		if err := writeAttr(w, "class", cls); err != nil {
			return err
		}
	}
	if style := modules.RenderStyle(node.Data); style != "" {
		if err := writeAttr(w, "style", style); err != nil {
			return err
		}
	}
	for _, id := range scopeIDs(node) {
		if _, err := fmt.Fprintf(w, " %s", id); err != nil {
			return err
		}
	}
	return nil
}

func writeAttr(w io.Writer, key, value string) error {
	if value == "" && isBooleanAttr(key) {
		_, err := fmt.Fprintf(w, " %s", key)
		return err
	}
	_, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(value))
	return err
}

// scopeIDs mirrors the scope ids the engine applies on creation.
func scopeIDs(node *vdom.VNode) []string {
	if node.FnScopeID != "" {
		return []string{node.FnScopeID}
	}
	var ids []string
	for ancestor := node; ancestor != nil; ancestor = ancestor.Parent {
		if ctx := ancestor.Context; ctx != nil {
			if id := ctx.ScopeID(); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func hasElementChild(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c.IsElement() {
			return true
		}
	}
	return false
}

func propsOf(node *vdom.VNode) map[string]string {
	if node.Data == nil {
		return nil
	}
	return node.Data.DOMProps
}

func (r *Renderer) newline(w io.Writer) {
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
