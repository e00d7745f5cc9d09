package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(content string) *VNode {
	return &VNode{
		Kind:      KindComment,
		Text:      content,
		IsComment: true,
	}
}

// Component creates a component placeholder. The init hook instantiates the
// component and sets ComponentInstance.
func Component(tag string, opts *ComponentOptions, hooks *Hooks, args ...any) *VNode {
	node := createElement(tag, args)
	node.Kind = KindComponent
	node.NS = ""
	node.ComponentOptions = opts
	node.data().Hook = hooks
	return node
}

// AsyncPlaceholder creates the comment rendered for an async component that
// has not resolved yet.
func AsyncPlaceholder(factory *AsyncFactory, key string) *VNode {
	return &VNode{
		Kind:               KindComment,
		IsComment:          true,
		IsAsyncPlaceholder: true,
		AsyncFactory:       factory,
		Key:                key,
	}
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		node := fn(item, i)
		if node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Walk calls fn for v and every descendant in depth-first order, stopping
// descent into a subtree when fn returns false.
func Walk(v *VNode, fn func(*VNode) bool) {
	if v == nil || !fn(v) {
		return
	}
	for _, child := range v.Children {
		Walk(child, fn)
	}
}

// Count returns the number of nodes in the tree.
func Count(v *VNode) int {
	n := 0
	Walk(v, func(*VNode) bool {
		n++
		return true
	})
	return n
}

// DuplicateKeys returns keys that appear more than once among children,
// in order of their second occurrence.
func DuplicateKeys(children []*VNode) []string {
	var dups []string
	seen := make(map[string]bool, len(children))
	for _, c := range children {
		if c == nil || c.Key == "" {
			continue
		}
		if seen[c.Key] {
			dups = append(dups, c.Key)
			continue
		}
		seen[c.Key] = true
	}
	return dups
}
