package patch

import (
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// patchVnode reconciles v onto old, reusing old's real node. Callers have
// already checked that the two are the same node.
func (p *Patcher) patchVnode(old, v *vdom.VNode, q *queue, owner []*vdom.VNode, index int, removeOnly bool) {
	if old == v {
		return
	}

	if v.Elm != nil && owner != nil {
		// Reused node: clone so the previous position keeps its real node.
		v = vdom.Clone(v)
		owner[index] = v
	}

	elm := old.Elm
	v.Elm = elm

	if old.IsAsyncPlaceholder {
		if v.AsyncFactory != nil && v.AsyncFactory.Resolved != nil {
			p.hydrate(elm, v, q, false)
		} else {
			v.IsAsyncPlaceholder = true
		}
		return
	}

	// Static trees are reused only when they are clones or render-once nodes.
	if v.IsStatic && old.IsStatic && v.Key == old.Key && (v.IsCloned || v.IsOnce) {
		v.ComponentInstance = old.ComponentInstance
		return
	}

	p.stats.Patched++
	data := v.Data
	h := v.Hook()
	if h != nil && h.Prepatch != nil {
		h.Prepatch(old, v)
	}

	oldCh, ch := old.Children, v.Children
	if data != nil && isPatchable(v) {
		for _, u := range p.cbs.update {
			u.Update(old, v)
		}
		// Modules may have merged hooks into v.
		h = v.Hook()
		if h != nil && h.Update != nil {
			h.Update(old, v)
		}
	}

	if !v.HasText() {
		switch {
		case len(oldCh) > 0 && len(ch) > 0:
			if !sameList(oldCh, ch) {
				p.updateChildren(elm, oldCh, ch, q, removeOnly)
			}
		case len(ch) > 0:
			if p.cfg.DevMode {
				p.checkDuplicateKeys(ch)
			}
			if old.HasText() {
				p.ops.SetTextContent(elm, "")
			}
			p.addVnodes(elm, nil, ch, 0, len(ch)-1, q)
		case len(oldCh) > 0:
			p.removeVnodes(oldCh, 0, len(oldCh)-1)
		case old.HasText():
			p.ops.SetTextContent(elm, "")
		}
	} else if old.Text != v.Text {
		p.ops.SetTextContent(elm, v.Text)
	}

	if h != nil && h.Postpatch != nil {
		h.Postpatch(old, v)
	}
}

// PatchNode reconciles v onto old in place and returns the real node. It
// is meant for hosts that pair nodes themselves: in dev mode a pair the
// equality oracle would have replaced is reported, then reused anyway.
func (p *Patcher) PatchNode(old, v *vdom.VNode) vdom.Node {
	start := p.begin()
	defer p.end()
	if p.cfg.DevMode && !p.eq.Same(old, v) {
		p.report(errors.New("R010").WithTag(v.Tag).WithKey(v.Key))
	}
	q := &queue{}
	p.patchVnode(old, v, q, nil, 0, false)
	p.invokeInsertHook(v, q, false)
	p.finish(OutcomeUpdate, start)
	return v.Elm
}
