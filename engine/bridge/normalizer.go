package bridge

import (
	"time"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
)

// Normalizer maps the two raw result shapes into the one canonical result.
// Total over its input: nil maps to nil.
type Normalizer struct {
	now func() time.Time
}

type NormalizerOption func(*Normalizer)

// WithNormalizerClock injects the time source used when a raw shape carries
// no start timestamp.
func WithNormalizerClock(now func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		n.now = now
	}
}

func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) Normalize(raw *execution.Raw) *execution.Result {
	if raw == nil {
		return nil
	}
	switch raw.Source {
	case execution.SourceLive:
		if raw.Live == nil {
			return nil
		}
		run := raw.Live
		return n.build("", run.Status, run.Finished, run.Mode,
			run.StartedAt, run.StoppedAt, run.WaitTill, run.Data)
	case execution.SourcePersisted:
		if raw.Record == nil {
			return nil
		}
		rec := raw.Record
		return n.build(rec.ID, rec.Status, rec.Finished, rec.Mode,
			rec.StartedAt, rec.StoppedAt, rec.WaitTill, rec.Data)
	default:
		return nil
	}
}

func (n *Normalizer) build(
	id core.ID,
	status core.StatusType,
	finished *bool,
	mode string,
	startedAt, stoppedAt, waitTill *time.Time,
	data map[string]any,
) *execution.Result {
	started := n.now().UTC()
	if startedAt != nil {
		started = startedAt.UTC()
	}
	return &execution.Result{
		ID:        id,
		Status:    status,
		Finished:  deriveFinished(finished, status),
		Mode:      mode,
		StartedAt: started.Format(time.RFC3339),
		StoppedAt: formatTime(stoppedAt),
		WaitTill:  formatTime(waitTill),
		Data:      data,
		Error:     execution.ErrorFromData(data),
	}
}

// deriveFinished prefers the shape's own flag and otherwise treats only a
// successful status as finished.
func deriveFinished(finished *bool, status core.StatusType) bool {
	if finished != nil {
		return *finished
	}
	return status == core.StatusSuccess
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
