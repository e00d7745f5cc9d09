package modules

import "github.com/vango-dev/reconcile/pkg/patch"

// Set is the default module set bound to one host.
type Set struct {
	Attrs       *Attrs
	Class       *Class
	Events      *Events
	DOMProps    *DOMProps
	Style       *Style
	Transitions *Transitions
	Refs        *Refs
	Directives  *Directives
}

// NewSet creates every module for host.
func NewSet(host Host) *Set {
	return &Set{
		Attrs:       NewAttrs(host),
		Class:       NewClass(host),
		Events:      NewEvents(host),
		DOMProps:    NewDOMProps(host),
		Style:       NewStyle(host),
		Transitions: NewTransitions(),
		Refs:        NewRefs(),
		Directives:  NewDirectives(),
	}
}

// Modules returns the modules in hook order.
func (s *Set) Modules() []patch.Module {
	return []patch.Module{
		s.Attrs,
		s.Class,
		s.Events,
		s.DOMProps,
		s.Style,
		s.Transitions,
		s.Refs,
		s.Directives,
	}
}

// Default returns a fresh default module list for host.
func Default(host Host) []patch.Module {
	return NewSet(host).Modules()
}
