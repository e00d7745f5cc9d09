package remote

import (
	"github.com/vango-dev/reconcile/pkg/modules"
	"github.com/vango-dev/reconcile/pkg/patch"
	"github.com/vango-dev/reconcile/pkg/protocol"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Host is a backend with every capability the engine and the default
// modules use.
type Host interface {
	patch.NodeOps
	patch.HydrationOps
	modules.Host
}

// Recorder decorates a Host. Every call is forwarded; mutating calls are
// also logged as protocol ops against numeric node ids, so a remote copy
// of the tree can replay them.
//
// Ids are assigned in creation order starting at 1. Nodes the recorder did
// not create (a mount container, adopted server markup) get an id the first
// time an op refers to them, or up front with Adopt.
//
// A Recorder is not safe for concurrent use.
type Recorder struct {
	host  Host
	ids   map[vdom.Node]uint64
	nodes map[uint64]vdom.Node
	next  uint64
	ops   []protocol.Op
}

// NewRecorder creates a Recorder forwarding to host.
func NewRecorder(host Host) *Recorder {
	return &Recorder{
		host:  host,
		ids:   make(map[vdom.Node]uint64),
		nodes: make(map[uint64]vdom.Node),
	}
}

// Host returns the wrapped host.
func (r *Recorder) Host() Host { return r.host }

// ID returns the id of n, assigning one if needed. A nil node is 0.
func (r *Recorder) ID(n vdom.Node) uint64 {
	if n == nil {
		return 0
	}
	if id, ok := r.ids[n]; ok {
		return id
	}
	r.next++
	r.ids[n] = r.next
	r.nodes[r.next] = n
	return r.next
}

// Node returns the node with the given id, or nil.
func (r *Recorder) Node(id uint64) vdom.Node {
	return r.nodes[id]
}

// Adopt assigns ids to root and its descendants in document order without
// recording anything. A client numbering its own copy of the same markup
// in the same order ends up with matching ids.
func (r *Recorder) Adopt(root vdom.Node) {
	if root == nil {
		return
	}
	r.ID(root)
	for c := r.host.FirstChild(root); c != nil; c = r.host.NextSibling(c) {
		r.Adopt(c)
	}
}

// Pending returns the number of ops recorded since the last Flush.
func (r *Recorder) Pending() int { return len(r.ops) }

// Flush returns the ops recorded since the last Flush.
func (r *Recorder) Flush() []protocol.Op {
	ops := r.ops
	r.ops = nil
	return ops
}

func (r *Recorder) record(op protocol.Op) {
	r.ops = append(r.ops, op)
}

func (r *Recorder) created(n vdom.Node, op protocol.Op) vdom.Node {
	op.ID = r.ID(n)
	r.record(op)
	return n
}

// patch.NodeOps

func (r *Recorder) CreateElement(tag string) vdom.Node {
	return r.created(r.host.CreateElement(tag), protocol.Op{Kind: protocol.OpCreateElement, Name: tag})
}

func (r *Recorder) CreateElementNS(ns, tag string) vdom.Node {
	return r.created(r.host.CreateElementNS(ns, tag), protocol.Op{Kind: protocol.OpCreateElement, NS: ns, Name: tag})
}

func (r *Recorder) CreateTextNode(text string) vdom.Node {
	return r.created(r.host.CreateTextNode(text), protocol.Op{Kind: protocol.OpCreateText, Value: text})
}

func (r *Recorder) CreateComment(text string) vdom.Node {
	return r.created(r.host.CreateComment(text), protocol.Op{Kind: protocol.OpCreateComment, Value: text})
}

func (r *Recorder) InsertBefore(parent, child, ref vdom.Node) {
	r.host.InsertBefore(parent, child, ref)
	r.record(protocol.Op{Kind: protocol.OpInsertBefore, Parent: r.ID(parent), ID: r.ID(child), Ref: r.ID(ref)})
}

func (r *Recorder) AppendChild(parent, child vdom.Node) {
	r.host.AppendChild(parent, child)
	r.record(protocol.Op{Kind: protocol.OpAppendChild, Parent: r.ID(parent), ID: r.ID(child)})
}

func (r *Recorder) RemoveChild(parent, child vdom.Node) {
	r.host.RemoveChild(parent, child)
	r.record(protocol.Op{Kind: protocol.OpRemoveChild, Parent: r.ID(parent), ID: r.ID(child)})
}

func (r *Recorder) ParentNode(n vdom.Node) vdom.Node  { return r.host.ParentNode(n) }
func (r *Recorder) NextSibling(n vdom.Node) vdom.Node { return r.host.NextSibling(n) }
func (r *Recorder) TagName(n vdom.Node) string        { return r.host.TagName(n) }

func (r *Recorder) SetTextContent(n vdom.Node, text string) {
	r.host.SetTextContent(n, text)
	r.record(protocol.Op{Kind: protocol.OpSetText, ID: r.ID(n), Value: text})
}

func (r *Recorder) SetStyleScope(n vdom.Node, scopeID string) {
	r.host.SetStyleScope(n, scopeID)
	r.record(protocol.Op{Kind: protocol.OpSetScope, ID: r.ID(n), Value: scopeID})
}

// patch.HydrationOps

func (r *Recorder) NodeType(n vdom.Node) int         { return r.host.NodeType(n) }
func (r *Recorder) FirstChild(n vdom.Node) vdom.Node { return r.host.FirstChild(n) }
func (r *Recorder) InnerHTML(n vdom.Node) string     { return r.host.InnerHTML(n) }
func (r *Recorder) NodeText(n vdom.Node) string      { return r.host.NodeText(n) }

func (r *Recorder) HasAttribute(n vdom.Node, name string) bool {
	return r.host.HasAttribute(n, name)
}

func (r *Recorder) SetNodeText(n vdom.Node, text string) {
	r.host.SetNodeText(n, text)
	r.record(protocol.Op{Kind: protocol.OpSetText, ID: r.ID(n), Value: text})
}

// modules.Host

func (r *Recorder) SetAttribute(n vdom.Node, name, value string) {
	r.host.SetAttribute(n, name, value)
	r.record(protocol.Op{Kind: protocol.OpSetAttr, ID: r.ID(n), Name: name, Value: value})
}

func (r *Recorder) RemoveAttribute(n vdom.Node, name string) {
	r.host.RemoveAttribute(n, name)
	r.record(protocol.Op{Kind: protocol.OpRemoveAttr, ID: r.ID(n), Name: name})
}

func (r *Recorder) SetProperty(n vdom.Node, name, value string) {
	r.host.SetProperty(n, name, value)
	r.record(protocol.Op{Kind: protocol.OpSetProp, ID: r.ID(n), Name: name, Value: value})
}

func (r *Recorder) AddEventListener(n vdom.Node, event string, fn vdom.Listener) {
	r.host.AddEventListener(n, event, fn)
	r.record(protocol.Op{Kind: protocol.OpListen, ID: r.ID(n), Name: event})
}

func (r *Recorder) RemoveEventListener(n vdom.Node, event string) {
	r.host.RemoveEventListener(n, event)
	r.record(protocol.Op{Kind: protocol.OpUnlisten, ID: r.ID(n), Name: event})
}

// IsLeaving forwards to the host when it tracks leave transitions.
func (r *Recorder) IsLeaving(n vdom.Node) bool {
	if lt, ok := r.host.(patch.LeaveTracker); ok {
		return lt.IsLeaving(n)
	}
	return false
}
