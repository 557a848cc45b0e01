package bridge

import (
	"context"
	"fmt"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/workflow"
)

// ModeManual is the execution mode for every run the bridge dispatches.
const ModeManual = "manual"

// SyntheticStart names the trigger node to start from and the payload
// injected there in place of its real external event.
type SyntheticStart struct {
	Node    workflow.Node
	Payload core.Input
}

// RunRequest is the record submitted to the engine for one run. It is built
// per invocation and discarded after dispatch. Synthetic is nil for runs
// that start without a substitute event; a request never carries more than
// one synthetic start.
type RunRequest struct {
	Mode      string
	Workflow  *workflow.Config
	UserID    string
	Synthetic *SyntheticStart
}

// DispatchOutcome is what dispatch produced: an execution identifier, a
// waiting-for-external-event marker, or neither (a dispatch failure).
type DispatchOutcome struct {
	ExecID  core.ID
	Waiting bool
}

// Failed reports that dispatch obtained neither an identifier nor a waiting
// signal.
func (o *DispatchOutcome) Failed() bool {
	return o == nil || (o.ExecID.IsZero() && !o.Waiting)
}

// Runner is the engine's manual-run entry point.
type Runner interface {
	Execute(ctx context.Context, req *RunRequest) (*DispatchOutcome, error)
}

type Dispatcher struct {
	runner Runner
}

func NewDispatcher(runner Runner) *Dispatcher {
	return &Dispatcher{runner: runner}
}

// Dispatch submits the run request. A waiting outcome is terminal for the
// bridge: the run cannot proceed past an external-event wait and is not
// retried.
func (d *Dispatcher) Dispatch(ctx context.Context, req *RunRequest) (*DispatchOutcome, error) {
	outcome, err := d.runner.Execute(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit run for workflow %s: %w", req.Workflow.ID, err)
	}
	if outcome == nil {
		outcome = &DispatchOutcome{}
	}
	return outcome, nil
}
