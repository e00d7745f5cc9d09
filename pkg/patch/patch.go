package patch

import (
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Patcher reconciles virtual trees against one host backend.
type Patcher struct {
	ops    NodeOps
	hyd    HydrationOps // nil when the host cannot hydrate
	leave  LeaveTracker // nil when the host has no transitions
	cbs    hookTable
	eq     *vdom.Equality
	cfg    Config
	logger *slog.Logger

	// Per Patcher state.
	hydrationBailed   bool
	creatingElmInVPre int

	// Per pass state. Passes nested inside hooks (component mounts) count
	// toward the outermost pass.
	stats Stats
	depth int
}

// New creates a Patcher. ops may also implement HydrationOps. The leave
// tracker is taken from ops or else from the first module implementing it.
// modules are consulted in order at every hook checkpoint.
func New(ops NodeOps, modules []Module, opts ...Option) *Patcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.IsUnknownElement == nil {
		cfg.IsUnknownElement = vdom.IsUnknownElement
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := &Patcher{
		ops:    ops,
		cbs:    buildHooks(modules),
		eq:     vdom.NewEquality(cfg.TextInputTypes),
		cfg:    cfg,
		logger: logger,
	}
	if h, ok := ops.(HydrationOps); ok {
		p.hyd = h
	}
	if l, ok := ops.(LeaveTracker); ok {
		p.leave = l
	}
	for _, m := range modules {
		if l, ok := m.(LeaveTracker); ok && p.leave == nil {
			p.leave = l
		}
	}
	return p
}

// Equality returns the node equality oracle used by this Patcher.
func (p *Patcher) Equality() *vdom.Equality {
	return p.eq
}

// LastStats returns the stats of the most recent pass.
func (p *Patcher) LastStats() Stats {
	return p.stats
}

// Patch reconciles vnode against old and returns the resulting real root.
//
// old is nil (mount), the *vdom.VNode returned by the previous render
// (update or replace), or a real node of the host (mount into existing
// markup, hydrating it when it carries the server-rendered marker or
// hydrating is set). A nil vnode unmounts old and returns nil.
//
// removeOnly suppresses moves in the keyed diff.
func (p *Patcher) Patch(old any, vnode *vdom.VNode, hydrating, removeOnly bool) vdom.Node {
	start := p.begin()
	defer p.end()

	var oldVnode *vdom.VNode
	var realElm vdom.Node
	switch o := old.(type) {
	case nil:
	case *vdom.VNode:
		oldVnode = o
	default:
		realElm = o
	}

	if vnode == nil {
		if oldVnode != nil {
			p.invokeDestroyHook(oldVnode)
		}
		p.finish(OutcomeUnmount, start)
		return nil
	}

	q := &queue{}
	outcome := OutcomeUpdate
	initial := false

	switch {
	case oldVnode == nil && realElm == nil:
		initial = true
		outcome = OutcomeMount
		p.createElm(vnode, q, nil, nil, false, nil, 0)

	case oldVnode != nil && p.eq.Same(oldVnode, vnode):
		p.patchVnode(oldVnode, vnode, q, nil, 0, removeOnly)

	default:
		outcome = OutcomeReplace
		if realElm != nil {
			if p.hyd != nil && p.hyd.NodeType(realElm) == ElementNode &&
				p.hyd.HasAttribute(realElm, p.cfg.ServerRenderedAttr) {
				p.hyd.RemoveAttribute(realElm, p.cfg.ServerRenderedAttr)
				hydrating = true
			}
			if hydrating {
				if p.hydrate(realElm, vnode, q, false) {
					p.invokeInsertHook(vnode, q, true)
					p.finish(OutcomeHydrate, start)
					return realElm
				}
				p.stats.HydrationFailed = true
				if p.cfg.DevMode {
					p.report(diagnosticHydrationBail(vnode))
				}
				// Nodes adopted before the mismatch are rendered again.
				q.nodes = nil
			}
			// Mounting into a real node: wrap it in an empty placeholder.
			oldVnode = vdom.At(realElm, strings.ToLower(p.ops.TagName(realElm)))
		}
		p.replace(oldVnode, vnode, q)
	}

	p.invokeInsertHook(vnode, q, initial)
	p.finish(outcome, start)
	return vnode.Elm
}

// replace creates vnode next to old's real node, re-points placeholder
// ancestors at the new element, then removes old.
func (p *Patcher) replace(oldVnode, vnode *vdom.VNode, q *queue) {
	oldElm := oldVnode.Elm
	parentElm := p.ops.ParentNode(oldElm)

	// A node mid leave transition is about to detach itself: create the
	// new tree without a parent.
	createParent := parentElm
	if p.leave != nil && p.leave.IsLeaving(oldElm) {
		createParent = nil
	}
	p.createElm(vnode, q, createParent, p.ops.NextSibling(oldElm), false, nil, 0)

	if vnode.Parent != nil {
		patchable := isPatchable(vnode)
		for ancestor := vnode.Parent; ancestor != nil; ancestor = ancestor.Parent {
			for _, h := range p.cbs.destroy {
				h.Destroy(ancestor)
			}
			ancestor.Elm = vnode.Elm
			if !patchable {
				p.registerRef(ancestor)
				continue
			}
			for _, h := range p.cbs.create {
				h.Create(emptyNode, ancestor)
			}
			// Re-run insert hooks merged by directives. The first one is
			// the component's own mounted hook and must not run twice.
			if h := ancestor.Hook(); h != nil && len(h.Insert) > 1 {
				for _, fn := range h.Insert[1:] {
					fn(ancestor)
				}
			}
		}
	}

	if parentElm != nil {
		p.removeVnodes([]*vdom.VNode{oldVnode}, 0, 0)
	} else if oldVnode.IsElement() {
		p.invokeDestroyHook(oldVnode)
	}
}

// invokeInsertHook flushes the insert queue. On the initial patch of a
// component root the queue is handed to the placeholder instead, and
// flushed when the parent inserts it.
func (p *Patcher) invokeInsertHook(vnode *vdom.VNode, q *queue, initial bool) {
	if initial && vnode.Parent != nil {
		if vnode.Parent.Data == nil {
			vnode.Parent.Data = &vdom.Data{}
		}
		vnode.Parent.Data.PendingInsert = q.nodes
		return
	}
	for _, v := range q.nodes {
		h := v.Hook()
		if h == nil {
			continue
		}
		for _, fn := range h.Insert {
			fn(v)
		}
	}
}

// begin starts a pass. Every begin is paired with a deferred end, so a
// panicking hook does not leave the Patcher nested.
func (p *Patcher) begin() time.Time {
	if p.depth == 0 {
		p.stats = Stats{}
	}
	p.depth++
	return time.Now()
}

func (p *Patcher) end() { p.depth-- }

// finish reports the outermost pass to the observer.
func (p *Patcher) finish(outcome Outcome, start time.Time) {
	if p.depth > 1 || p.cfg.Observer == nil {
		return
	}
	p.cfg.Observer.ObservePatch(PatchReport{
		Outcome:  outcome,
		Stats:    p.stats,
		Start:    start,
		Duration: time.Since(start),
	})
}
