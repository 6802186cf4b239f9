package driver

import (
	"context"
	"time"

	"cargo-expand/internal/trace"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Format.
type PhaseObserver func(PhaseEvent)

// startPhase opens a pass span and notifies obs. The returned func closes
// both.
func startPhase(ctx context.Context, obs PhaseObserver, name string) (context.Context, func(detail string)) {
	sp, ctx := trace.Start(ctx, trace.ScopePass, name)
	if obs != nil {
		obs(PhaseEvent{Name: name, Status: PhaseStart})
	}
	started := time.Now()
	return ctx, func(detail string) {
		sp.End(detail)
		if obs != nil {
			obs(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(started)})
		}
	}
}
