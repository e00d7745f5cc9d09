// Package remote records the host operations of a patch pass so they can
// be replayed on a tree that lives somewhere else.
//
// A Recorder wraps the real backend on the side that runs the reconciler.
// Mirror applies the recorded ops to a second backend, typically on the
// other end of a live connection.
package remote
