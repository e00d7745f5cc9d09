package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is rendered as the only child of <body> and carries the
	// server-rendered marker.
	Body *vdom.VNode

	Title string
	Meta  []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts are loaded with defer at the end of the body.
	Scripts []string

	// LiveEndpoint is the websocket path the client script connects to.
	// Empty for static pages.
	LiveEndpoint string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string
	Content  string
	Property string // OpenGraph
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	return r.renderPage(w, page, func() {})
}

// renderPage writes the document, calling flush after the head and after
// the body content.
func (r *Renderer) renderPage(w io.Writer, page PageData, flush func()) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	flush()

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	flush()

	if err := r.renderScripts(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</body>\n</html>\n"); err != nil {
		return err
	}
	flush()
	return nil
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n  <meta charset=\"utf-8\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, meta := range page.Meta {
		if err := renderMetaTag(w, meta); err != nil {
			return err
		}
	}
	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, "  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</head>\n")
	return err
}

func renderMetaTag(w io.Writer, meta MetaTag) error {
	if _, err := io.WriteString(w, "  <meta"); err != nil {
		return err
	}
	if meta.Name != "" {
		if _, err := fmt.Fprintf(w, ` name="%s"`, escapeAttr(meta.Name)); err != nil {
			return err
		}
	}
	if meta.Property != "" {
		if _, err := fmt.Fprintf(w, ` property="%s"`, escapeAttr(meta.Property)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, " content=\"%s\">\n", escapeAttr(meta.Content)); err != nil {
		return err
	}
	return nil
}

// renderScripts writes the live endpoint and the page scripts.
func (r *Renderer) renderScripts(w io.Writer, page PageData) error {
	if page.LiveEndpoint != "" {
		if _, err := fmt.Fprintf(w, "  <script>window.__RECONCILE_LIVE__=%s;</script>\n",
			strconv.Quote(page.LiveEndpoint)); err != nil {
			return err
		}
	}
	for _, src := range page.Scripts {
		if _, err := fmt.Fprintf(w, "  <script src=\"%s\" defer></script>\n", escapeAttr(src)); err != nil {
			return err
		}
	}
	return nil
}
