package execution

import (
	"time"

	"github.com/flowgate/flowgate/engine/core"
)

// -----------------------------------------------------------------------------
// Raw result shapes
// -----------------------------------------------------------------------------

// Source discriminates which engine shape a raw result came from.
type Source string

const (
	// SourceLive marks a run object returned by the in-memory completion
	// signal, authoritative while the run is tracked.
	SourceLive Source = "live"
	// SourcePersisted marks a durable execution record, authoritative after
	// the run was evicted from live tracking.
	SourcePersisted Source = "persisted"
)

// Raw is the discriminated union of the two result shapes the engine can
// produce. The source tag is set at creation; consumers never probe fields to
// tell the shapes apart.
type Raw struct {
	Source Source
	Live   *LiveRun
	Record *Record
}

func NewLive(run *LiveRun) *Raw {
	return &Raw{Source: SourceLive, Live: run}
}

func NewPersisted(record *Record) *Raw {
	return &Raw{Source: SourcePersisted, Record: record}
}

// LiveRun is the run object resolved by the live completion signal. It does
// not expose an execution identifier.
type LiveRun struct {
	Status    core.StatusType `json:"status"`
	Finished  *bool           `json:"finished,omitempty"`
	Mode      string          `json:"mode"`
	StartedAt *time.Time      `json:"startedAt,omitempty"`
	StoppedAt *time.Time      `json:"stoppedAt,omitempty"`
	WaitTill  *time.Time      `json:"waitTill,omitempty"`
	Data      map[string]any  `json:"data,omitempty"`
}

// Record is the persisted execution record.
type Record struct {
	ID         core.ID         `json:"id"`
	WorkflowID string          `json:"workflowId,omitempty"`
	Status     core.StatusType `json:"status"`
	Finished   *bool           `json:"finished,omitempty"`
	Mode       string          `json:"mode"`
	StartedAt  *time.Time      `json:"startedAt,omitempty"`
	StoppedAt  *time.Time      `json:"stoppedAt,omitempty"`
	WaitTill   *time.Time      `json:"waitTill,omitempty"`
	Data       map[string]any  `json:"data,omitempty"`
}

// -----------------------------------------------------------------------------
// Canonical result
// -----------------------------------------------------------------------------

// Result is the normalized view of a run outcome handed back to tool callers.
// Timestamps are ISO-8601 text; absent ones are null, never dropped.
type Result struct {
	ID        core.ID         `json:"id,omitempty"`
	Status    core.StatusType `json:"status"`
	Finished  bool            `json:"finished"`
	Mode      string          `json:"mode"`
	StartedAt string          `json:"startedAt"`
	StoppedAt *string         `json:"stoppedAt"`
	WaitTill  *string         `json:"waitTill"`
	Data      map[string]any  `json:"data,omitempty"`
	Error     *core.Error     `json:"error"`
}

// ErrorFromData reads the error slot nested under resultData, if present.
// The rest of the data payload stays opaque to the bridge.
func ErrorFromData(data map[string]any) *core.Error {
	if data == nil {
		return nil
	}
	resultData, ok := data["resultData"].(map[string]any)
	if !ok {
		return nil
	}
	rawErr, ok := resultData["error"].(map[string]any)
	if !ok {
		return nil
	}
	execErr := &core.Error{}
	if msg, ok := rawErr["message"].(string); ok {
		execErr.Message = msg
	}
	if code, ok := rawErr["code"].(string); ok {
		execErr.Code = code
	}
	if execErr.Message == "" && execErr.Code == "" {
		return nil
	}
	return execErr
}
