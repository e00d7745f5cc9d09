// Package htmldom is a host backend for the reconciler built on
// golang.org/x/net/html nodes.
//
// Document implements patch.NodeOps, patch.HydrationOps and modules.Host,
// so the same tree can be mounted, patched, hydrated from server markup and
// serialized back to HTML. Listeners registered by the events module are
// kept in the Document and fired with Dispatch.
package htmldom
