package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
)

const (
	// MsgNoExecutionID is returned when dispatch produced neither an
	// identifier nor a waiting signal.
	MsgNoExecutionID = "Failed to start execution: no execution ID returned."
	// MsgWaitingForEvent explains why a manual invocation cannot proceed
	// past an external-event wait.
	MsgWaitingForEvent = "Workflow requires an external event to start and cannot be run manually. " +
		"Execution is waiting for that event."
	// MsgResultMissing is returned when the run finished but its result is
	// gone from both the live tracker and the persisted store.
	MsgResultMissing = "Execution finished but result could not be retrieved."
	// MsgFinishedWithError is the fallback for error-status runs whose
	// result data carries no message.
	MsgFinishedWithError = "Execution finished with an error."
	// MsgWaitFailed is the fallback when a wait failure carries no message.
	MsgWaitFailed = "Failed to retrieve execution result."
)

// ToolResponse is the answer handed back to tool callers, emitted both as a
// structured value and as serialized text carrying identical data.
type ToolResponse struct {
	Success                 bool              `json:"success"`
	ExecutionID             string            `json:"executionId,omitempty"`
	WaitingForExternalEvent bool              `json:"waitingForExternalEvent,omitempty"`
	Message                 string            `json:"message,omitempty"`
	Result                  *execution.Result `json:"result"`
	Error                   *core.Error       `json:"error,omitempty"`
}

// Text renders the serialized form of the response for human and log
// consumption. Both forms carry the same data.
func (r *ToolResponse) Text() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":%t,"message":%q}`, r.Success, r.Message)
	}
	return string(data)
}

// ResponseBuilder assembles the final ToolResponse from the dispatch outcome
// and, when the wait stage was reached, the normalized result or its error.
type ResponseBuilder struct{}

func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// Build applies the response decision table; the first matching row wins.
func (b *ResponseBuilder) Build(
	outcome *DispatchOutcome,
	result *execution.Result,
	waitErr error,
) *ToolResponse {
	if outcome.Failed() {
		return &ToolResponse{Success: false, Message: MsgNoExecutionID}
	}
	execID := outcome.ExecID.String()
	if outcome.Waiting {
		return &ToolResponse{
			Success:                 false,
			ExecutionID:             execID,
			WaitingForExternalEvent: true,
			Message:                 MsgWaitingForEvent,
		}
	}
	if waitErr != nil {
		msg := waitErr.Error()
		if msg == "" {
			msg = MsgWaitFailed
		}
		return &ToolResponse{
			Success:     false,
			ExecutionID: execID,
			Message:     msg,
			Error:       core.NewError(waitErr, "", nil),
		}
	}
	if result == nil {
		return &ToolResponse{
			Success:     false,
			ExecutionID: execID,
			Message:     MsgResultMissing,
		}
	}
	if result.Status.IsError() {
		msg := MsgFinishedWithError
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return &ToolResponse{
			Success:     false,
			ExecutionID: execID,
			Message:     msg,
			Result:      result,
			Error:       result.Error,
		}
	}
	return &ToolResponse{
		Success:     true,
		ExecutionID: execID,
		Result:      result,
	}
}
