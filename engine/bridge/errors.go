package bridge

import "errors"

var (
	// ErrWorkflowArchived rejects invocations of archived workflows.
	ErrWorkflowArchived = errors.New("workflow is archived")
	// ErrWorkflowUnavailable rejects workflows not marked for remote
	// invocation.
	ErrWorkflowUnavailable = errors.New("workflow is not available for remote invocation")
	// ErrNotTracked signals that the live completion signal no longer knows
	// the execution: it already completed and was evicted, or another process
	// tracks it. The waiter recovers from this via the persisted record.
	ErrNotTracked = errors.New("execution is not tracked")
)
