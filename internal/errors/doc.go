// Package errors provides the coded diagnostics reported by the reconciler
// and the errors returned by its I/O layers.
//
// # Categories
//
//   - hydration: server-rendered markup does not match the virtual tree
//   - authoring: duplicate keys, unknown elements, unmatched closing tags
//   - invariant: an engine precondition was not met by the caller
//   - config: invalid configuration files
//   - protocol: malformed op-log frames
//   - cli: command line usage
//
// # Codes
//
// Each code maps to a short message and a longer explanation:
//
//	d := errors.New("R001").
//	    WithKey("item-3").
//	    WithSuggestion("Give every sibling a unique key")
//
// Diagnostics are advisory. Only the I/O layers return them as Go errors.
package errors
