package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// isCreate reports whether old is the empty node passed to create hooks.
func isCreate(old *vdom.VNode) bool {
	return old == nil || old.Elm == nil
}

// ownHooks gives v a Hooks value it can append to without touching hooks
// shared with other nodes or previous renders.
func ownHooks(v *vdom.VNode) *vdom.Hooks {
	if v.Data == nil {
		v.Data = &vdom.Data{}
	}
	h := &vdom.Hooks{}
	if prev := v.Data.Hook; prev != nil {
		*h = *prev
		h.Insert = append([]func(*vdom.VNode){}, prev.Insert...)
	}
	v.Data.Hook = h
	return h
}

// mergeInsert appends fn to v's insert hooks. fn runs at most once even
// when the hooks are flushed again for a reused node.
func mergeInsert(v *vdom.VNode, fn func(*vdom.VNode)) {
	fired := false
	ownHooks(v).AddInsert(func(n *vdom.VNode) {
		if fired {
			return
		}
		fired = true
		fn(n)
	})
}

// mergePostpatch chains fn after v's postpatch hook.
func mergePostpatch(v *vdom.VNode, fn func(old, v *vdom.VNode)) {
	ownHooks(v).AddPostpatch(fn)
}

func dataOf(v *vdom.VNode) *vdom.Data {
	if v == nil || v.Data == nil {
		return emptyData
	}
	return v.Data
}

var emptyData = &vdom.Data{}
