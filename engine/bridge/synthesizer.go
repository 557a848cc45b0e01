package bridge

import (
	"fmt"
	"strconv"
	"time"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/workflow"
)

// Inputs carries the caller-supplied values available to the synthesizer.
type Inputs struct {
	ChatInput   string         `json:"chatInput,omitempty"`
	FormData    map[string]any `json:"formData,omitempty"`
	WebhookData map[string]any `json:"webhookData,omitempty"`
}

// Synthesizer builds the typed payload a trigger node would have received
// from its real external event. Pure apart from reading the injected clock.
type Synthesizer struct {
	now       func() time.Time
	sessionID func() string
}

type SynthesizerOption func(*Synthesizer)

// WithClock injects the time source used for form timestamps and, by
// default, chat session identifiers.
func WithClock(now func() time.Time) SynthesizerOption {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// WithSessionIDGenerator injects the generator for chat session identifiers.
func WithSessionIDGenerator(gen func() string) SynthesizerOption {
	return func(s *Synthesizer) {
		s.sessionID = gen
	}
}

func NewSynthesizer(opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessionID == nil {
		now := s.now
		s.sessionID = func() string {
			return strconv.FormatInt(now().UnixMilli(), 10)
		}
	}
	return s
}

// Synthesize returns the payload for the given trigger kind. The switch is
// exhaustive over the closed TriggerKind set; an unknown kind is a
// programming error surfaced as such.
func (s *Synthesizer) Synthesize(kind workflow.TriggerKind, in *Inputs) (core.Input, error) {
	if in == nil {
		in = &Inputs{}
	}
	switch kind {
	case workflow.TriggerChat:
		return core.Input{
			"sessionId": "mcp-session-" + s.sessionID(),
			"action":    "sendMessage",
			"chatInput": in.ChatInput,
		}, nil
	case workflow.TriggerForm:
		return core.Input{
			"submittedAt": s.now().UTC().Format(time.RFC3339),
			"formMode":    "test",
		}, nil
	case workflow.TriggerWebhook:
		// Caller-supplied webhook data is accepted by the schema but is not
		// merged into the synthetic payload yet.
		return core.Input{
			"headers": map[string]any{},
			"params":  map[string]any{},
			"query":   map[string]any{},
			"body":    map[string]any{},
		}, nil
	default:
		return nil, fmt.Errorf("unknown trigger kind: %q", kind)
	}
}
