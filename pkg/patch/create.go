package patch

import (
	"reflect"

	"github.com/vango-dev/reconcile/pkg/vdom"
)

// queue collects nodes whose insert hooks run once the pass has attached
// every real node.
type queue struct {
	nodes []*vdom.VNode
}

func (q *queue) push(v ...*vdom.VNode) {
	q.nodes = append(q.nodes, v...)
}

// createElm materializes v and its subtree, then inserts it into parent
// before ref. When v was already materialized by a previous render and owner
// is given, a clone replaces owner[index] so two positions never share one
// real node.
func (p *Patcher) createElm(v *vdom.VNode, q *queue, parent, ref vdom.Node, nested bool, owner []*vdom.VNode, index int) {
	if v.Elm != nil && owner != nil {
		v = vdom.Clone(v)
		owner[index] = v
	}

	v.IsRootInsert = !nested // for transition enter check
	if p.createComponent(v, q, parent, ref) {
		return
	}

	switch {
	case v.IsElement():
		pre := v.Data != nil && v.Data.Pre
		if p.cfg.DevMode {
			if pre {
				p.creatingElmInVPre++
			}
			if v.Kind == vdom.KindElement && p.isUnknownElement(v, p.creatingElmInVPre > 0) {
				p.reportUnknownElement(v)
			}
		}

		if v.NS != "" {
			v.Elm = p.ops.CreateElementNS(v.NS, v.Tag)
		} else {
			v.Elm = p.ops.CreateElement(v.Tag)
		}
		p.stats.Created++
		p.setScope(v)
		p.createChildren(v, q)
		if v.Data != nil {
			p.invokeCreateHooks(v, q)
		}
		p.insert(parent, v.Elm, ref)

		if p.cfg.DevMode && pre {
			p.creatingElmInVPre--
		}

	case v.IsComment:
		v.Elm = p.ops.CreateComment(v.Text)
		p.stats.Created++
		p.insert(parent, v.Elm, ref)

	default:
		v.Elm = p.ops.CreateTextNode(v.Text)
		p.stats.Created++
		p.insert(parent, v.Elm, ref)
	}
}

// createComponent runs the init hook of a component placeholder. It returns
// true when the hook produced an instance, in which case the instance's root
// has been adopted and inserted.
func (p *Patcher) createComponent(v *vdom.VNode, q *queue, parent, ref vdom.Node) bool {
	data := v.Data
	if data == nil {
		return false
	}
	reactivated := v.ComponentInstance != nil && data.KeepAlive
	if h := data.Hook; h != nil && h.Init != nil {
		h.Init(v, false)
	}
	// After init a child component has mounted itself and set the
	// placeholder's instance.
	if v.ComponentInstance == nil {
		return false
	}
	p.initComponent(v, q)
	p.insert(parent, v.Elm, ref)
	if reactivated {
		p.reactivateComponent(v, q, parent, ref)
	}
	return true
}

func (p *Patcher) initComponent(v *vdom.VNode, q *queue) {
	if pending := v.Data.PendingInsert; pending != nil {
		q.push(pending...)
		v.Data.PendingInsert = nil
	}
	v.Elm = v.ComponentInstance.Elm()
	if isPatchable(v) {
		p.invokeCreateHooks(v, q)
		p.setScope(v)
	} else {
		// Empty component root: only the ref is registered.
		p.registerRef(v)
		q.push(v)
	}
}

// reactivateComponent re-runs the activate hooks of the first inner root
// carrying a transition, since its create hooks do not run again.
func (p *Patcher) reactivateComponent(v *vdom.VNode, q *queue, parent, ref vdom.Node) {
	inner := v
	for inner.ComponentInstance != nil {
		inner = inner.ComponentInstance.Root()
		if inner == nil {
			break
		}
		if inner.Data != nil && inner.Data.Transition != nil {
			for _, h := range p.cbs.activate {
				h.Activate(emptyNode, inner)
			}
			q.push(inner)
			break
		}
	}
	p.insert(parent, v.Elm, ref)
}

func (p *Patcher) insert(parent, elm, ref vdom.Node) {
	if parent == nil {
		return
	}
	if ref != nil {
		if p.ops.ParentNode(ref) == parent {
			p.ops.InsertBefore(parent, elm, ref)
		}
		return
	}
	p.ops.AppendChild(parent, elm)
}

func (p *Patcher) createChildren(v *vdom.VNode, q *queue) {
	if len(v.Children) > 0 {
		if p.cfg.DevMode {
			p.checkDuplicateKeys(v.Children)
		}
		for i, child := range v.Children {
			p.createElm(child, q, v.Elm, nil, true, v.Children, i)
		}
		return
	}
	if v.Text != "" {
		p.ops.AppendChild(v.Elm, p.ops.CreateTextNode(v.Text))
		p.stats.Created++
	}
}

// isPatchable resolves nested component roots and reports whether the
// innermost root is an element.
func isPatchable(v *vdom.VNode) bool {
	for v.ComponentInstance != nil {
		v = v.ComponentInstance.Root()
		if v == nil {
			return false
		}
	}
	return v.IsElement()
}

func (p *Patcher) invokeCreateHooks(v *vdom.VNode, q *queue) {
	for _, h := range p.cbs.create {
		h.Create(emptyNode, v)
	}
	if h := v.Hook(); h != nil {
		if h.Create != nil {
			h.Create(emptyNode, v)
		}
		if h.HasInsert() {
			q.push(v)
		}
	}
}

func (p *Patcher) registerRef(v *vdom.VNode) {
	for _, r := range p.cbs.refs {
		r.RegisterRef(v)
	}
}

// setScope applies style scope ids: the functional scope if set, otherwise
// every scoped context up the placeholder chain, plus the active instance
// for slot content.
func (p *Patcher) setScope(v *vdom.VNode) {
	if v.FnScopeID != "" {
		p.ops.SetStyleScope(v.Elm, v.FnScopeID)
	} else {
		for ancestor := v; ancestor != nil; ancestor = ancestor.Parent {
			if ctx := ancestor.Context; ctx != nil {
				if id := ctx.ScopeID(); id != "" {
					p.ops.SetStyleScope(v.Elm, id)
				}
			}
		}
	}
	if p.cfg.ActiveInstance == nil {
		return
	}
	if active := p.cfg.ActiveInstance(); active != nil &&
		!sameContext(active, v.Context) &&
		!sameContext(active, v.FnContext) {
		if id := active.ScopeID(); id != "" {
			p.ops.SetStyleScope(v.Elm, id)
		}
	}
}

// sameContext compares contexts by identity. Values of a non-comparable
// dynamic type are never the same context.
func sameContext(a, b vdom.Context) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

func (p *Patcher) addVnodes(parent, ref vdom.Node, vnodes []*vdom.VNode, start, end int, q *queue) {
	for ; start <= end; start++ {
		p.createElm(vnodes[start], q, parent, ref, false, vnodes, start)
	}
}
