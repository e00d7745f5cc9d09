package instrument

import (
	"context"
	"log/slog"

	"github.com/vango-dev/reconcile/pkg/patch"
)

// Multi fans a report out to several observers. Nil entries are skipped.
type Multi []patch.Observer

// ObservePatch implements patch.Observer.
func (m Multi) ObservePatch(r patch.PatchReport) {
	for _, o := range m {
		if o != nil {
			o.ObservePatch(r)
		}
	}
}

// Log returns an observer that logs every pass at the given level.
func Log(logger *slog.Logger, level slog.Level) patch.Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return patch.ObserverFunc(func(r patch.PatchReport) {
		s := r.Stats
		logger.Log(context.Background(), level, "patch pass",
			"outcome", r.Outcome,
			"duration", r.Duration,
			"created", s.Created,
			"removed", s.Removed,
			"moved", s.Moved,
			"patched", s.Patched,
			"hydrated", s.Hydrated,
			"diagnostics", s.Diagnostics,
		)
	})
}
