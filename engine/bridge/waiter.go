package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/flowgate/flowgate/pkg/logger"
)

// CompletionSource resolves the live completion signal for an execution.
// Await suspends until the run reaches a terminal state and must return an
// error wrapping ErrNotTracked when the identifier is no longer tracked in
// memory.
type CompletionSource interface {
	Await(ctx context.Context, execID core.ID) (*execution.Raw, error)
}

// Waiter retrieves the terminal result of a dispatched run: first over the
// live completion signal, then from the persisted record once the run has
// been evicted from live tracking.
type Waiter struct {
	live CompletionSource
	repo execution.Repository
}

func NewWaiter(live CompletionSource, repo execution.Repository) *Waiter {
	return &Waiter{live: live, repo: repo}
}

// Wait returns the raw terminal result for execID. A nil result with a nil
// error means the run finished but its result is gone from both the live
// tracker and the persisted store. Live-path failures other than
// ErrNotTracked propagate unchanged.
func (w *Waiter) Wait(ctx context.Context, execID core.ID) (*execution.Raw, error) {
	raw, err := w.live.Await(ctx, execID)
	if err == nil {
		return raw, nil
	}
	if !errors.Is(err, ErrNotTracked) {
		return nil, err
	}
	log := logger.FromContext(ctx)
	log.Debug("Execution evicted from live tracking, reading persisted record", "exec_id", execID)
	record, err := w.repo.Get(ctx, execID, execution.GetOptions{IncludeData: true})
	if err != nil {
		if errors.Is(err, execution.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load persisted execution %s: %w", execID, err)
	}
	return execution.NewPersisted(record), nil
}
