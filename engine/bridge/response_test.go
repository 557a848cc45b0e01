package bridge

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseBuilder_Build(t *testing.T) {
	b := NewResponseBuilder()
	execID := core.ID("exec-1")

	t.Run("Should fail with the exact message when dispatch produced nothing", func(t *testing.T) {
		resp := b.Build(&DispatchOutcome{}, nil, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, "Failed to start execution: no execution ID returned.", resp.Message)
		assert.Empty(t, resp.ExecutionID)
	})

	t.Run("Should fail with a nil outcome as a dispatch failure", func(t *testing.T) {
		resp := b.Build(nil, nil, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, MsgNoExecutionID, resp.Message)
	})

	t.Run("Should fail with the waiting flag when the run waits on an external event", func(t *testing.T) {
		resp := b.Build(&DispatchOutcome{ExecID: execID, Waiting: true}, nil, nil)
		assert.False(t, resp.Success)
		assert.True(t, resp.WaitingForExternalEvent)
		assert.Equal(t, MsgWaitingForEvent, resp.Message)
	})

	t.Run("Should carry the wait error's message", func(t *testing.T) {
		resp := b.Build(&DispatchOutcome{ExecID: execID}, nil, errors.New("engine crashed"))
		assert.False(t, resp.Success)
		assert.Equal(t, "engine crashed", resp.Message)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "engine crashed", resp.Error.Message)
	})

	t.Run("Should report an unretrievable result", func(t *testing.T) {
		resp := b.Build(&DispatchOutcome{ExecID: execID}, nil, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, "Execution finished but result could not be retrieved.", resp.Message)
		assert.Nil(t, resp.Result)
	})

	t.Run("Should use the nested error message for a failed run", func(t *testing.T) {
		result := &execution.Result{
			Status: core.StatusFailed,
			Error:  &core.Error{Message: "node blew up"},
		}
		resp := b.Build(&DispatchOutcome{ExecID: execID}, result, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, "node blew up", resp.Message)
		assert.Equal(t, result, resp.Result)
	})

	t.Run("Should fall back to the generic message for a failed run without error details", func(t *testing.T) {
		result := &execution.Result{Status: core.StatusFailed}
		resp := b.Build(&DispatchOutcome{ExecID: execID}, result, nil)
		assert.False(t, resp.Success)
		assert.Equal(t, MsgFinishedWithError, resp.Message)
	})

	t.Run("Should succeed without a message for a successful run", func(t *testing.T) {
		result := &execution.Result{Status: core.StatusSuccess, Finished: true}
		resp := b.Build(&DispatchOutcome{ExecID: execID}, result, nil)
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Message)
		assert.Equal(t, execID.String(), resp.ExecutionID)
		assert.Equal(t, result, resp.Result)
	})
}

func TestToolResponse_Text(t *testing.T) {
	t.Run("Should serialize the same data as the structured form", func(t *testing.T) {
		resp := &ToolResponse{
			Success:     true,
			ExecutionID: "exec-1",
			Result:      &execution.Result{Status: core.StatusSuccess, Finished: true},
		}
		var decoded ToolResponse
		require.NoError(t, json.Unmarshal([]byte(resp.Text()), &decoded))
		assert.Equal(t, resp.Success, decoded.Success)
		assert.Equal(t, resp.ExecutionID, decoded.ExecutionID)
		require.NotNil(t, decoded.Result)
		assert.Equal(t, resp.Result.Status, decoded.Result.Status)
	})

	t.Run("Should render null for a missing result", func(t *testing.T) {
		resp := &ToolResponse{Success: false, Message: MsgResultMissing}
		assert.Contains(t, resp.Text(), `"result": null`)
	})
}
