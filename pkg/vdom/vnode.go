package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComment                // <!-- comment -->
	KindComponent              // Component placeholder
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Node is a host (real) node. Its concrete type is owned by the backend;
// the engine only compares nodes for identity and hands them back to the
// backend.
type Node any

// VNode is the virtual DOM node.
//
// A VNode is produced fresh on every render pass. Only the Elm,
// ComponentInstance, IsAsyncPlaceholder and IsRootInsert fields are written
// by the reconciler; everything else is treated as read-only.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element or component tag name
	Data     *Data    // Bindings; nil when the node has none
	Children []*VNode // Child nodes
	Text     string   // For KindText and KindComment
	Key      string   // Reconciliation key; empty means unkeyed
	NS       string   // Element namespace (svg, math)

	IsStatic  bool // Hoisted static subtree
	IsOnce    bool // Rendered once
	IsCloned  bool // Produced by Clone
	IsComment bool // Comment node (also true for async placeholders)

	// IsAsyncPlaceholder marks a comment standing in for an async component
	// that has not resolved yet.
	IsAsyncPlaceholder bool
	AsyncFactory       *AsyncFactory

	// ComponentOptions describes how to instantiate a component placeholder.
	ComponentOptions *ComponentOptions

	// ComponentInstance is set by the component init hook.
	ComponentInstance Instance

	// Elm is the real node this VNode was materialized into.
	Elm Node

	// Parent is the placeholder VNode of the component whose root this is.
	Parent *VNode

	Context   Context // Rendering context that produced this node
	FnContext Context // Functional rendering context
	FnScopeID string  // Scope id of a functional component

	// IsRootInsert is true when the node was inserted as the root of an
	// insertion (not as a nested child). Transitions use it for enter checks.
	IsRootInsert bool
}

// Data holds the bindings of a VNode. Only Hook, Pre, KeepAlive and
// PendingInsert are read by the reconciler; the rest belongs to modules.
type Data struct {
	Attrs       map[string]string
	DOMProps    map[string]string // innerHTML, textContent, value
	StaticClass string
	Class       []string
	StaticStyle map[string]string
	Style       map[string]string
	On          map[string]Listener
	Directives  []*Directive
	Ref         string
	Transition  *Transition
	Hook        *Hooks

	Pre       bool // Verbatim mode: children are not compiled
	KeepAlive bool // Component is cached between activations

	// PendingInsert carries a component root's insertion queue until the
	// placeholder is initialized by its parent.
	PendingInsert []*VNode
}

// Listener is an event handler bound through Data.On.
type Listener func(event Event)

// Event is the payload passed to listeners.
type Event struct {
	Type   string
	Target Node
	Value  string
}

// Hooks are per-node lifecycle overrides.
//
// Insert holds a list because directive modules merge their inserted
// callbacks into it after the component's own insert hook.
type Hooks struct {
	Init      func(v *VNode, hydrating bool)
	Create    func(empty, v *VNode)
	Prepatch  func(old, v *VNode)
	Update    func(old, v *VNode)
	Postpatch func(old, v *VNode)
	Insert    []func(v *VNode)
	Remove    func(v *VNode, rm *RemoveCallback)
	Destroy   func(v *VNode)
}

// HasInsert reports whether any insert hook is registered.
func (h *Hooks) HasInsert() bool {
	return h != nil && len(h.Insert) > 0
}

// AddInsert appends an insert hook.
func (h *Hooks) AddInsert(fn func(v *VNode)) {
	h.Insert = append(h.Insert, fn)
}

// AddPostpatch chains fn after any existing postpatch hook.
func (h *Hooks) AddPostpatch(fn func(old, v *VNode)) {
	prev := h.Postpatch
	if prev == nil {
		h.Postpatch = fn
		return
	}
	h.Postpatch = func(old, v *VNode) {
		prev(old, v)
		fn(old, v)
	}
}

// Directive is a directive binding on an element.
type Directive struct {
	Name     string
	Value    any
	OldValue any
	Arg      string
	Def      *DirectiveDef
}

// DirectiveDef implements a directive. Any callback may be nil.
type DirectiveDef struct {
	Bind             func(el Node, d *Directive, v, old *VNode)
	Inserted         func(el Node, d *Directive, v, old *VNode)
	Update           func(el Node, d *Directive, v, old *VNode)
	ComponentUpdated func(el Node, d *Directive, v, old *VNode)
	Unbind           func(el Node, d *Directive, v, old *VNode)
}

// Transition describes enter and leave behavior for a node.
// Leave must eventually call done; until it does the node stays attached.
type Transition struct {
	Name  string
	Enter func(v *VNode)
	Leave func(v *VNode, done func())
}

// Instance is a materialized component.
type Instance interface {
	// Elm returns the real root node of the component.
	Elm() Node
	// Root returns the VNode the component last rendered.
	Root() *VNode
}

// Context is the rendering context (component) a VNode was produced by.
// Contexts are compared by identity, so implementations are usually
// pointers; a value of a non-comparable type never equals another context.
type Context interface {
	// ScopeID returns the style scope id, or "" when the context is unscoped.
	ScopeID() string
}

// ComponentOptions describes a component placeholder.
type ComponentOptions struct {
	Name string
	// Props are passed to the component's init hook untouched.
	Props map[string]any
}

// AsyncFactory correlates placeholders of one async component.
type AsyncFactory struct {
	Resolved any   // Non-nil once the component definition is available
	Error    error // Non-nil when resolution failed
}

// RemoveCallback is a reference-counted completion callback for removing a
// real node. The node is detached when the count reaches zero.
type RemoveCallback struct {
	listeners int
	fn        func()
}

// NewRemoveCallback creates a callback expecting the given number of Done calls.
func NewRemoveCallback(listeners int, fn func()) *RemoveCallback {
	return &RemoveCallback{listeners: listeners, fn: fn}
}

// Add registers n more expected Done calls.
func (rm *RemoveCallback) Add(n int) {
	rm.listeners += n
}

// Listeners returns the number of outstanding Done calls.
func (rm *RemoveCallback) Listeners() int {
	return rm.listeners
}

// Done signals one listener has finished. The completion runs once the count
// reaches zero; extra calls are ignored.
func (rm *RemoveCallback) Done() {
	if rm.listeners <= 0 {
		return
	}
	rm.listeners--
	if rm.listeners == 0 && rm.fn != nil {
		rm.fn()
	}
}

// HasText reports whether the node carries a text payload rather than
// children. Text and comment nodes always do; elements only when Text is set.
func (v *VNode) HasText() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case KindText, KindComment:
		return true
	}
	return v.Text != ""
}

// IsElement reports whether the node has a tag (element or component).
func (v *VNode) IsElement() bool {
	return v != nil && (v.Kind == KindElement || v.Kind == KindComponent)
}

// Hook returns the node's hooks, or nil.
func (v *VNode) Hook() *Hooks {
	if v == nil || v.Data == nil {
		return nil
	}
	return v.Data.Hook
}

// Clone returns a shallow copy of v without its real node or component
// instance. The children slice is copied so the clone can be re-targeted
// independently.
func Clone(v *VNode) *VNode {
	if v == nil {
		return nil
	}
	c := &VNode{
		Kind:             v.Kind,
		Tag:              v.Tag,
		Data:             v.Data,
		Text:             v.Text,
		Key:              v.Key,
		NS:               v.NS,
		IsStatic:         v.IsStatic,
		IsComment:        v.IsComment,
		AsyncFactory:     v.AsyncFactory,
		ComponentOptions: v.ComponentOptions,
		Context:          v.Context,
		FnContext:        v.FnContext,
		FnScopeID:        v.FnScopeID,
		IsCloned:         true,
	}
	if v.Children != nil {
		c.Children = make([]*VNode, len(v.Children))
		copy(c.Children, v.Children)
	}
	return c
}

// Empty returns an element VNode with empty data and children, used as the
// "old" node for create hooks.
func Empty() *VNode {
	return &VNode{Kind: KindElement, Data: &Data{}, Children: []*VNode{}}
}

// At returns a placeholder VNode wrapping an existing real node.
func At(elm Node, tag string) *VNode {
	return &VNode{Kind: KindElement, Tag: tag, Data: &Data{}, Children: []*VNode{}, Elm: elm}
}
