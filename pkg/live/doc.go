// Package live serves server-driven views over websockets.
//
// A Session owns a host tree, a remote.Recorder around it and the Patcher
// that drives it. Every render pass records the host mutations and sends
// them to the client as protocol op batches. The client replays each batch
// with a remote.Mirror and reports events back as FrameEvent frames naming
// the recorded node id; the session dispatches them to the listeners of its
// own tree and renders again.
//
// Usage:
//
//	h := live.NewHandler(func(s *live.Session, r *http.Request) live.RenderFunc {
//		count := 0
//		return func() *vdom.VNode {
//			return vdom.Button(vdom.OnClick(func(vdom.Event) { count++ }), vdom.Textf("%d", count))
//		}
//	}, nil)
//	http.Handle("/live", h)
package live
