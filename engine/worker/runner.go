package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowgate/flowgate/engine/bridge"
	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/flowgate/flowgate/engine/workflow"
	"github.com/flowgate/flowgate/pkg/logger"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
)

const (
	// RunWorkflowName is the workflow type the graph interpreter registers on
	// the task queue.
	RunWorkflowName = "FlowgateRun"
	// QueryWaitingForEvent is answered by the interpreter once the run has
	// parked on an external event it cannot proceed past.
	QueryWaitingForEvent = "waitingForExternalEvent"
)

// RunInput is the payload handed to the graph interpreter for one run. The
// synthetic payload, when present, is attached as resumption data for the
// named trigger node so the run starts there instead of waiting for the real
// event.
type RunInput struct {
	ExecID         core.ID          `json:"execId"`
	WorkflowID     string           `json:"workflowId"`
	Mode           string           `json:"mode"`
	UserID         string           `json:"userId"`
	Definition     *workflow.Config `json:"definition"`
	StartNode      string           `json:"startNode,omitempty"`
	TriggerPayload core.Input       `json:"triggerPayload,omitempty"`
}

// Runner submits manual runs to the engine over Temporal and resolves their
// live completion signals. It implements bridge.Runner and
// bridge.CompletionSource.
type Runner struct {
	client    *Client
	taskQueue string
}

func NewRunner(c *Client) *Runner {
	return &Runner{client: c, taskQueue: c.Config().TaskQueue}
}

// Execute starts one run and reports the outcome. When the interpreter parks
// the run on an external event despite synthesis, the waiting flag is set and
// the bridge will not enter the wait stage.
func (r *Runner) Execute(ctx context.Context, req *bridge.RunRequest) (*bridge.DispatchOutcome, error) {
	execID := core.MustNewID()
	input := &RunInput{
		ExecID:     execID,
		WorkflowID: req.Workflow.ID,
		Mode:       req.Mode,
		UserID:     req.UserID,
		Definition: req.Workflow,
	}
	if req.Synthetic != nil {
		input.StartNode = req.Synthetic.Node.Name
		input.TriggerPayload = req.Synthetic.Payload
	}
	options := client.StartWorkflowOptions{
		ID:        execID.String(),
		TaskQueue: r.taskQueue,
	}
	if _, err := r.client.ExecuteWorkflow(ctx, options, RunWorkflowName, input); err != nil {
		return nil, fmt.Errorf("failed to start run for workflow %s: %w", req.Workflow.ID, err)
	}
	if r.isWaitingForEvent(ctx, execID) {
		return &bridge.DispatchOutcome{ExecID: execID, Waiting: true}, nil
	}
	return &bridge.DispatchOutcome{ExecID: execID}, nil
}

func (r *Runner) isWaitingForEvent(ctx context.Context, execID core.ID) bool {
	value, err := r.client.QueryWorkflow(ctx, execID.String(), "", QueryWaitingForEvent)
	if err != nil {
		// Interpreters predating the query handler cannot be waiting here.
		logger.FromContext(ctx).Debug("Waiting-state query unsupported", "exec_id", execID, "error", err)
		return false
	}
	var waiting bool
	if err := value.Get(&waiting); err != nil {
		return false
	}
	return waiting
}

// Await resolves the live completion signal for execID, suspending the
// caller until the run reaches a terminal state. Runs the Temporal service
// no longer knows are reported as bridge.ErrNotTracked so the waiter can
// read the persisted record instead.
func (r *Runner) Await(ctx context.Context, execID core.ID) (*execution.Raw, error) {
	run := r.client.GetWorkflow(ctx, execID.String(), "")
	var live execution.LiveRun
	if err := run.Get(ctx, &live); err != nil {
		var notFound *serviceerror.NotFound
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", bridge.ErrNotTracked, execID)
		}
		return nil, err
	}
	return execution.NewLive(&live), nil
}
