package patch

import "github.com/vango-dev/reconcile/pkg/vdom"

// invokeDestroyHook runs destroy hooks depth first: a node's own hook and
// the module hooks, then each child.
func (p *Patcher) invokeDestroyHook(v *vdom.VNode) {
	if v.Data != nil {
		if h := v.Data.Hook; h != nil && h.Destroy != nil {
			h.Destroy(v)
		}
		for _, h := range p.cbs.destroy {
			h.Destroy(v)
		}
	}
	for _, child := range v.Children {
		if child != nil {
			p.invokeDestroyHook(child)
		}
	}
}

func (p *Patcher) removeVnodes(vnodes []*vdom.VNode, start, end int) {
	for ; start <= end; start++ {
		ch := vnodes[start]
		if ch == nil {
			continue
		}
		p.stats.Removed++
		if ch.IsElement() {
			p.removeAndInvokeRemoveHook(ch, nil)
			p.invokeDestroyHook(ch)
		} else {
			p.removeNode(ch.Elm)
		}
	}
}

// removeAndInvokeRemoveHook detaches v once every remove hook, including
// those of nested component roots, has called Done on the shared callback.
func (p *Patcher) removeAndInvokeRemoveHook(v *vdom.VNode, rm *vdom.RemoveCallback) {
	if rm == nil && v.Data == nil {
		p.removeNode(v.Elm)
		return
	}

	listeners := len(p.cbs.remove) + 1
	if rm != nil {
		rm.Add(listeners)
	} else {
		elm := v.Elm
		rm = vdom.NewRemoveCallback(listeners, func() { p.removeNode(elm) })
	}

	if inst := v.ComponentInstance; inst != nil {
		if root := inst.Root(); root != nil && root.Data != nil {
			p.removeAndInvokeRemoveHook(root, rm)
		}
	}
	for _, h := range p.cbs.remove {
		h.Remove(v, rm)
	}
	if h := v.Hook(); h != nil && h.Remove != nil {
		h.Remove(v, rm)
	} else {
		rm.Done()
	}
}

func (p *Patcher) removeNode(el vdom.Node) {
	// The element may already be gone through innerHTML or textContent.
	if parent := p.ops.ParentNode(el); parent != nil {
		p.ops.RemoveChild(parent, el)
	}
}
