package modules

import "github.com/vango-dev/reconcile/pkg/vdom"

// Directives runs directive callbacks: bind and inserted for new
// directives, update and componentUpdated for kept ones, unbind for
// removed ones.
type Directives struct{}

// NewDirectives creates the directives module.
func NewDirectives() *Directives {
	return &Directives{}
}

// Create and Update call the bind, update and unbind hooks of changed
// directives.
func (m *Directives) Create(old, v *vdom.VNode) { m.update(old, v) }
func (m *Directives) Update(old, v *vdom.VNode) { m.update(old, v) }

// Destroy unbinds every directive of v.
func (m *Directives) Destroy(v *vdom.VNode) {
	for _, d := range dataOf(v).Directives {
		callDirective(unbindOf(d.Def), v.Elm, d, v, v)
	}
}

func (m *Directives) update(old, v *vdom.VNode) {
	oldDirs := dataOf(old).Directives
	newDirs := dataOf(v).Directives
	if len(oldDirs) == 0 && len(newDirs) == 0 {
		return
	}
	creating := isCreate(old)
	oldByKey := indexDirectives(oldDirs)
	newByKey := indexDirectives(newDirs)

	var withInsert, withPostpatch []*vdom.Directive
	for _, dir := range newDirs {
		prev, ok := oldByKey[directiveKey(dir)]
		if !ok {
			callDirective(bindOf(dir.Def), v.Elm, dir, v, old)
			if dir.Def != nil && dir.Def.Inserted != nil {
				withInsert = append(withInsert, dir)
			}
			continue
		}
		dir.OldValue = prev.Value
		callDirective(updateOf(dir.Def), v.Elm, dir, v, old)
		if dir.Def != nil && dir.Def.ComponentUpdated != nil {
			withPostpatch = append(withPostpatch, dir)
		}
	}

	if len(withInsert) > 0 {
		callInsert := func(n *vdom.VNode) {
			for _, dir := range withInsert {
				dir.Def.Inserted(n.Elm, dir, n, old)
			}
		}
		if creating {
			mergeInsert(v, callInsert)
		} else {
			callInsert(v)
		}
	}

	if len(withPostpatch) > 0 {
		mergePostpatch(v, func(o, n *vdom.VNode) {
			for _, dir := range withPostpatch {
				dir.Def.ComponentUpdated(n.Elm, dir, n, o)
			}
		})
	}

	if !creating {
		for _, dir := range oldDirs {
			if _, ok := newByKey[directiveKey(dir)]; !ok {
				callDirective(unbindOf(dir.Def), old.Elm, dir, old, old)
			}
		}
	}
}

type directiveFn = func(el vdom.Node, d *vdom.Directive, v, old *vdom.VNode)

func callDirective(fn directiveFn, el vdom.Node, d *vdom.Directive, v, old *vdom.VNode) {
	if fn != nil {
		fn(el, d, v, old)
	}
}

func directiveKey(d *vdom.Directive) string {
	if d.Arg != "" {
		return d.Name + ":" + d.Arg
	}
	return d.Name
}

func indexDirectives(dirs []*vdom.Directive) map[string]*vdom.Directive {
	m := make(map[string]*vdom.Directive, len(dirs))
	for _, d := range dirs {
		m[directiveKey(d)] = d
	}
	return m
}

func bindOf(def *vdom.DirectiveDef) directiveFn {
	if def == nil {
		return nil
	}
	return def.Bind
}

func updateOf(def *vdom.DirectiveDef) directiveFn {
	if def == nil {
		return nil
	}
	return def.Update
}

func unbindOf(def *vdom.DirectiveDef) directiveFn {
	if def == nil {
		return nil
	}
	return def.Unbind
}
