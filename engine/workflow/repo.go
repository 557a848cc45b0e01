package workflow

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a workflow definition does not exist.
var ErrNotFound = errors.New("workflow not found")

// Repository loads workflow definitions. Definitions are read-only to the
// bridge.
type Repository interface {
	Get(ctx context.Context, workflowID string) (*Config, error)
}
