package execution

import (
	"context"
	"errors"

	"github.com/flowgate/flowgate/engine/core"
)

// ErrNotFound is returned when no persisted record exists for an execution.
var ErrNotFound = errors.New("execution not found")

// GetOptions controls how a persisted record is read.
type GetOptions struct {
	// IncludeData requests the full, unflattened result data.
	IncludeData bool
}

// Repository reads and writes persisted execution records.
type Repository interface {
	Get(ctx context.Context, execID core.ID, opts GetOptions) (*Record, error)
	Create(ctx context.Context, record *Record) error
	Finish(ctx context.Context, record *Record) error
}
