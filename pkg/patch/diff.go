package patch

import "github.com/vango-dev/reconcile/pkg/vdom"

// updateChildren reconciles two child lists of parent with a four-pointer
// scan. Matched old slots found through the key map are set to nil in
// oldCh. removeOnly suppresses moves so leaving nodes keep their position.
func (p *Patcher) updateChildren(parent vdom.Node, oldCh, newCh []*vdom.VNode, q *queue, removeOnly bool) {
	oldStartIdx, oldEndIdx := 0, len(oldCh)-1
	newStartIdx, newEndIdx := 0, len(newCh)-1
	oldStartVnode, oldEndVnode := oldCh[oldStartIdx], oldCh[oldEndIdx]
	newStartVnode, newEndVnode := newCh[newStartIdx], newCh[newEndIdx]

	var oldKeyToIdx map[string]int
	canMove := !removeOnly

	if p.cfg.DevMode {
		p.checkDuplicateKeys(newCh)
	}

	// at returns list[i], or nil once the cursor has left the list.
	at := func(list []*vdom.VNode, i int) *vdom.VNode {
		if i < 0 || i >= len(list) {
			return nil
		}
		return list[i]
	}

	for oldStartIdx <= oldEndIdx && newStartIdx <= newEndIdx {
		switch {
		case oldStartVnode == nil:
			// Moved left by a key map match.
			oldStartIdx++
			oldStartVnode = at(oldCh, oldStartIdx)

		case oldEndVnode == nil:
			oldEndIdx--
			oldEndVnode = at(oldCh, oldEndIdx)

		case p.eq.Same(oldStartVnode, newStartVnode):
			p.patchVnode(oldStartVnode, newStartVnode, q, newCh, newStartIdx, false)
			oldStartIdx++
			newStartIdx++
			oldStartVnode = at(oldCh, oldStartIdx)
			newStartVnode = at(newCh, newStartIdx)

		case p.eq.Same(oldEndVnode, newEndVnode):
			p.patchVnode(oldEndVnode, newEndVnode, q, newCh, newEndIdx, false)
			oldEndIdx--
			newEndIdx--
			oldEndVnode = at(oldCh, oldEndIdx)
			newEndVnode = at(newCh, newEndIdx)

		case p.eq.Same(oldStartVnode, newEndVnode):
			// Moved right.
			p.patchVnode(oldStartVnode, newEndVnode, q, newCh, newEndIdx, false)
			if canMove {
				p.ops.InsertBefore(parent, oldStartVnode.Elm, p.ops.NextSibling(oldEndVnode.Elm))
				p.stats.Moved++
			}
			oldStartIdx++
			newEndIdx--
			oldStartVnode = at(oldCh, oldStartIdx)
			newEndVnode = at(newCh, newEndIdx)

		case p.eq.Same(oldEndVnode, newStartVnode):
			// Moved left.
			p.patchVnode(oldEndVnode, newStartVnode, q, newCh, newStartIdx, false)
			if canMove {
				p.ops.InsertBefore(parent, oldEndVnode.Elm, oldStartVnode.Elm)
				p.stats.Moved++
			}
			oldEndIdx--
			newStartIdx++
			oldEndVnode = at(oldCh, oldEndIdx)
			newStartVnode = at(newCh, newStartIdx)

		default:
			if oldKeyToIdx == nil {
				oldKeyToIdx = createKeyToOldIdx(oldCh, oldStartIdx, oldEndIdx)
			}
			idxInOld, found := -1, false
			if newStartVnode.Key != "" {
				idxInOld, found = oldKeyToIdx[newStartVnode.Key]
			} else {
				idxInOld, found = p.findIdxInOld(newStartVnode, oldCh, oldStartIdx, oldEndIdx)
			}

			var vnodeToMove *vdom.VNode
			if found {
				vnodeToMove = oldCh[idxInOld]
			}
			switch {
			case vnodeToMove == nil:
				// New element. A nil slot means the key was already matched
				// earlier by a duplicate.
				p.createElm(newStartVnode, q, parent, oldStartVnode.Elm, false, newCh, newStartIdx)
			case p.eq.Same(vnodeToMove, newStartVnode):
				p.patchVnode(vnodeToMove, newStartVnode, q, newCh, newStartIdx, false)
				oldCh[idxInOld] = nil
				if canMove {
					p.ops.InsertBefore(parent, vnodeToMove.Elm, oldStartVnode.Elm)
					p.stats.Moved++
				}
			default:
				// Same key but different element: treat as new.
				p.createElm(newStartVnode, q, parent, oldStartVnode.Elm, false, newCh, newStartIdx)
			}
			newStartIdx++
			newStartVnode = at(newCh, newStartIdx)
		}
	}

	if oldStartIdx > oldEndIdx {
		var refElm vdom.Node
		if next := at(newCh, newEndIdx+1); next != nil {
			refElm = next.Elm
		}
		p.addVnodes(parent, refElm, newCh, newStartIdx, newEndIdx, q)
	} else if newStartIdx > newEndIdx {
		p.removeVnodes(oldCh, oldStartIdx, oldEndIdx)
	}
}

// createKeyToOldIdx maps keys in children[begin..end] to their index.
// A duplicate key maps to its last occurrence.
func createKeyToOldIdx(children []*vdom.VNode, begin, end int) map[string]int {
	m := make(map[string]int, end-begin+1)
	for i := begin; i <= end; i++ {
		if c := children[i]; c != nil && c.Key != "" {
			m[c.Key] = i
		}
	}
	return m
}

// findIdxInOld scans the unprocessed window for an unkeyed match.
func (p *Patcher) findIdxInOld(v *vdom.VNode, oldCh []*vdom.VNode, start, end int) (int, bool) {
	for i := start; i <= end; i++ {
		if c := oldCh[i]; c != nil && p.eq.Same(v, c) {
			return i, true
		}
	}
	return -1, false
}

// sameList reports whether a and b are the same slice.
func sameList(a, b []*vdom.VNode) bool {
	return len(a) == len(b) && len(a) > 0 && &a[0] == &b[0]
}
