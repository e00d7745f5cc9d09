package vdom

// DefaultTextInputTypes are the input types treated as interchangeable by
// the equality oracle. Switching between them never recreates the element.
var DefaultTextInputTypes = []string{"text", "number", "password", "search", "email", "tel", "url"}

// Equality decides whether two VNodes represent the same logical node.
// The zero value uses DefaultTextInputTypes.
type Equality struct {
	textInputTypes map[string]bool
}

// NewEquality creates an Equality treating the given input types as
// interchangeable. A nil slice selects DefaultTextInputTypes.
func NewEquality(textInputTypes []string) *Equality {
	if textInputTypes == nil {
		textInputTypes = DefaultTextInputTypes
	}
	set := make(map[string]bool, len(textInputTypes))
	for _, t := range textInputTypes {
		set[t] = true
	}
	return &Equality{textInputTypes: set}
}

var defaultEquality = NewEquality(nil)

// SameVNode reports whether a and b are the same logical node using the
// default text input policy.
func SameVNode(a, b *VNode) bool {
	return defaultEquality.Same(a, b)
}

// Same reports whether b can be patched onto a instead of replacing it.
func (e *Equality) Same(a, b *VNode) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Key != b.Key || a.AsyncFactory != b.AsyncFactory {
		return false
	}
	if a.Tag == b.Tag &&
		a.IsComment == b.IsComment &&
		a.Kind == b.Kind &&
		(a.Data != nil) == (b.Data != nil) &&
		e.sameInputType(a, b) {
		return true
	}
	return a.IsAsyncPlaceholder && b.AsyncFactory != nil && b.AsyncFactory.Error == nil
}

// IsTextInputType reports whether t is one of the interchangeable types.
func (e *Equality) IsTextInputType(t string) bool {
	if e == nil || e.textInputTypes == nil {
		return defaultEquality.textInputTypes[t]
	}
	return e.textInputTypes[t]
}

func (e *Equality) sameInputType(a, b *VNode) bool {
	if a.Tag != "input" {
		return true
	}
	typeA := inputType(a)
	typeB := inputType(b)
	return typeA == typeB || (e.IsTextInputType(typeA) && e.IsTextInputType(typeB))
}

func inputType(v *VNode) string {
	if v.Data == nil || v.Data.Attrs == nil {
		return ""
	}
	return v.Data.Attrs["type"]
}
