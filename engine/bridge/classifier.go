package bridge

import (
	"context"
	"fmt"

	"github.com/flowgate/flowgate/engine/workflow"
)

// StartChecker is the engine predicate deciding whether a workflow can start
// for the given identity without waiting on an external event.
type StartChecker interface {
	CanRunDirectly(ctx context.Context, userID string, wf *workflow.Config) (bool, error)
}

// StartCheckerFunc adapts a function to the StartChecker interface.
type StartCheckerFunc func(ctx context.Context, userID string, wf *workflow.Config) (bool, error)

func (f StartCheckerFunc) CanRunDirectly(ctx context.Context, userID string, wf *workflow.Config) (bool, error) {
	return f(ctx, userID, wf)
}

// Classification is the outcome of trigger classification. Entry is nil when
// the run proceeds without a synthetic start.
type Classification struct {
	Entry *workflow.Node
}

// Conversational triggers win over form and webhook triggers when several
// coexist: they are the common agent-invocation entry point.
var triggerPriority = []workflow.TriggerKind{
	workflow.TriggerChat,
	workflow.TriggerForm,
	workflow.TriggerWebhook,
}

type Classifier struct {
	checker StartChecker
}

func NewClassifier(checker StartChecker) *Classifier {
	return &Classifier{checker: checker}
}

// Classify decides whether wf needs a synthetic start and, if so, which
// enabled trigger node receives it. Workflows that the engine can start
// directly, and workflows with no matching trigger at all, run without one;
// in the latter case the engine may itself end up waiting on a real event.
func (c *Classifier) Classify(ctx context.Context, userID string, wf *workflow.Config) (*Classification, error) {
	direct, err := c.checker.CanRunDirectly(ctx, userID, wf)
	if err != nil {
		return nil, fmt.Errorf("failed to check workflow startability: %w", err)
	}
	if direct {
		return &Classification{}, nil
	}
	enabled := wf.EnabledNodes()
	for _, kind := range triggerPriority {
		for i := range enabled {
			nodeKind, ok := enabled[i].Type.TriggerKind()
			if ok && nodeKind == kind {
				node := enabled[i]
				return &Classification{Entry: &node}, nil
			}
		}
	}
	return &Classification{}, nil
}
