package patch

import "time"

// Outcome classifies a patch pass.
type Outcome string

const (
	OutcomeMount   Outcome = "mount"
	OutcomeUpdate  Outcome = "update"
	OutcomeReplace Outcome = "replace"
	OutcomeHydrate Outcome = "hydrate"
	OutcomeUnmount Outcome = "unmount"
)

// Stats counts the work done by one pass.
type Stats struct {
	Created     int // host nodes created for virtual nodes
	Removed     int // subtrees whose removal was started
	Moved       int // real nodes moved by the keyed diff
	Patched     int // node pairs reconciled in place
	Hydrated    int // real nodes adopted by hydration
	Diagnostics int

	// HydrationFailed is set when hydration was attempted and bailed.
	HydrationFailed bool
}

// PatchReport describes one completed pass.
type PatchReport struct {
	Outcome  Outcome
	Stats    Stats
	Start    time.Time
	Duration time.Duration
}

// Observer receives a report after every pass.
type Observer interface {
	ObservePatch(r PatchReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r PatchReport)

// ObservePatch calls f(r).
func (f ObserverFunc) ObservePatch(r PatchReport) { f(r) }
