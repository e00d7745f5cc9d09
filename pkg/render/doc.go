// Package render renders virtual trees to HTML on the server.
//
// The output is the hydration source for the patch engine: the root
// element carries the server-rendered marker attribute, so a Patcher
// given the real root adopts the markup instead of creating nodes.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(tree)
//
// Attributes are sorted by name. Class and style use the same string forms
// as the class and style modules, so hydrated elements need no rewrite.
// A component placeholder renders the root its instance last rendered.
// DOM property innerHTML is written unescaped and must be trusted.
//
// RenderPage wraps the tree in a full document; StreamingRenderer flushes
// the head and the body separately when the writer is an http.Flusher.
package render
