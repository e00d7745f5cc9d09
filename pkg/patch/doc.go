// Package patch reconciles virtual trees against a real, mutable target tree.
//
// A Patcher is built once from a host backend (NodeOps, optionally
// HydrationOps) and an ordered list of modules. Each call to Patch either
// mounts a tree, updates the previous tree in place, replaces it, hydrates
// server-rendered nodes, or unmounts:
//
//	p := patch.New(doc, []patch.Module{modules.NewAttrs(doc), modules.NewClass(doc)})
//	elm := p.Patch(nil, view(state), false, false)  // mount
//	...
//	p.Patch(prev, view(state), false, false)        // update
//	p.Patch(prev, nil, false, false)                // unmount
//
// Children are diffed with a four-pointer scan plus a lazily built key map.
// Module hooks run at fixed checkpoints: create, activate, update, remove and
// destroy. Removal is reference counted so a module (transitions) can keep a
// node attached until its own work finishes.
//
// A Patcher is not safe for concurrent use. Hosts embedding it in concurrent
// code must serialize calls.
package patch
