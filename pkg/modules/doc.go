// Package modules provides the feature modules plugged into a patch.Patcher.
//
// Each module implements a subset of the patch hook interfaces. Default
// returns them in the order the engine expects: attrs, class, events, DOM
// properties, style and transition, followed by refs and directives.
package modules
