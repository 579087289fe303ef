package orchestrator

import (
	"context"

	"bambawatch/internal/models"
	"bambawatch/internal/notifier"
)

// StoreChecker produces one Observation per store. Satisfied by
// extractor.Extractor; tests substitute a fake.
type StoreChecker interface {
	CheckStore(ctx context.Context, store models.Store) models.Observation
}

// RunGuard decides whether a run may start at all. Satisfied by
// rslimiter.MemoryGuard.
type RunGuard interface {
	AllowRun() bool
}

// MessageDispatcher sends composed messages. Satisfied by
// notifier.Dispatcher.
type MessageDispatcher interface {
	Dispatch(ctx context.Context, messages []notifier.Message) int
}
