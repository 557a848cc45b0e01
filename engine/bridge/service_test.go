package bridge

import (
	"testing"
	"time"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/flowgate/flowgate/engine/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatWorkflow() *workflow.Config {
	return &workflow.Config{
		ID:                     "wf1",
		Name:                   "Chat Workflow",
		AvailableForInvocation: true,
		Nodes: []workflow.Node{
			{Name: "Chat", Type: workflow.NodeTypeChatTrigger},
			{Name: "Reply", Type: workflow.NodeType("set")},
		},
	}
}

func newTestService(
	wf *workflow.Config,
	runner *fakeRunner,
	live *fakeCompletionSource,
	repo *fakeExecutionRepo,
) *Service {
	workflows := &fakeWorkflowRepo{workflows: map[string]*workflow.Config{}}
	if wf != nil {
		workflows.workflows[wf.ID] = wf
	}
	fixedNow := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixedNow }
	return NewService(
		workflows,
		StartCheckerFunc(neverStartable),
		runner,
		live,
		repo,
		WithSynthesizer(NewSynthesizer(
			WithClock(clock),
			WithSessionIDGenerator(func() string { return "fixed" }),
		)),
		WithNormalizer(NewNormalizer(WithNormalizerClock(clock))),
	)
}

func TestService_Invoke(t *testing.T) {
	execID := core.ID("exec-1")

	t.Run("Should run a chat workflow end to end", func(t *testing.T) {
		runner := &fakeRunner{outcome: &DispatchOutcome{ExecID: execID}}
		live := &fakeCompletionSource{
			raw: execution.NewLive(&execution.LiveRun{Status: core.StatusSuccess, Mode: ModeManual}),
		}
		svc := newTestService(chatWorkflow(), runner, live, &fakeExecutionRepo{})

		resp, err := svc.Invoke(t.Context(), "user", &Input{
			WorkflowID: "wf1",
			Inputs:     &Inputs{ChatInput: "hello"},
		})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, execID.String(), resp.ExecutionID)
		require.NotNil(t, resp.Result)
		assert.Equal(t, core.StatusSuccess, resp.Result.Status)

		require.NotNil(t, runner.lastReq)
		assert.Equal(t, ModeManual, runner.lastReq.Mode)
		require.NotNil(t, runner.lastReq.Synthetic)
		assert.Equal(t, "Chat", runner.lastReq.Synthetic.Node.Name)
		assert.Equal(t, "hello", runner.lastReq.Synthetic.Payload["chatInput"])
	})

	t.Run("Should reject an unknown workflow before dispatch", func(t *testing.T) {
		runner := &fakeRunner{}
		svc := newTestService(nil, runner, &fakeCompletionSource{}, &fakeExecutionRepo{})

		_, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "missing"})

		require.Error(t, err)
		assert.ErrorIs(t, err, workflow.ErrNotFound)
		assert.Nil(t, runner.lastReq)
	})

	t.Run("Should reject an archived workflow before dispatch", func(t *testing.T) {
		wf := chatWorkflow()
		wf.IsArchived = true
		runner := &fakeRunner{}
		svc := newTestService(wf, runner, &fakeCompletionSource{}, &fakeExecutionRepo{})

		_, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf1"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrWorkflowArchived)
		assert.Nil(t, runner.lastReq)
	})

	t.Run("Should reject a workflow not available for remote invocation", func(t *testing.T) {
		wf := chatWorkflow()
		wf.AvailableForInvocation = false
		svc := newTestService(wf, &fakeRunner{}, &fakeCompletionSource{}, &fakeExecutionRepo{})

		_, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf1"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrWorkflowUnavailable)
	})

	t.Run("Should reject input without a workflow ID", func(t *testing.T) {
		svc := newTestService(chatWorkflow(), &fakeRunner{}, &fakeCompletionSource{}, &fakeExecutionRepo{})

		_, err := svc.Invoke(t.Context(), "user", &Input{})

		assert.Error(t, err)
	})

	t.Run("Should recover a dispatch failure into a structured payload", func(t *testing.T) {
		runner := &fakeRunner{outcome: &DispatchOutcome{}}
		svc := newTestService(chatWorkflow(), runner, &fakeCompletionSource{}, &fakeExecutionRepo{})

		resp, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf1"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Failed to start execution: no execution ID returned.", resp.Message)
	})

	t.Run("Should not enter the wait stage for a waiting outcome", func(t *testing.T) {
		runner := &fakeRunner{outcome: &DispatchOutcome{ExecID: execID, Waiting: true}}
		live := &fakeCompletionSource{err: ErrNotTracked}
		svc := newTestService(chatWorkflow(), runner, live, &fakeExecutionRepo{})

		resp, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf1"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.True(t, resp.WaitingForExternalEvent)
		assert.Equal(t, MsgWaitingForEvent, resp.Message)
		assert.Nil(t, resp.Result)
	})

	t.Run("Should recover the result from the persisted record after eviction", func(t *testing.T) {
		runner := &fakeRunner{outcome: &DispatchOutcome{ExecID: execID}}
		live := &fakeCompletionSource{err: ErrNotTracked}
		repo := &fakeExecutionRepo{records: map[core.ID]*execution.Record{
			execID: {ID: execID, Status: core.StatusSuccess, Mode: ModeManual},
		}}
		svc := newTestService(chatWorkflow(), runner, live, repo)

		resp, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf1"})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		require.NotNil(t, resp.Result)
		assert.Equal(t, execID, resp.Result.ID)
		assert.True(t, resp.Result.Finished)
	})

	t.Run("Should report an unretrievable result when both paths miss", func(t *testing.T) {
		runner := &fakeRunner{outcome: &DispatchOutcome{ExecID: execID}}
		live := &fakeCompletionSource{err: ErrNotTracked}
		svc := newTestService(chatWorkflow(), runner, live, &fakeExecutionRepo{})

		resp, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf1"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Nil(t, resp.Result)
		assert.Equal(t, "Execution finished but result could not be retrieved.", resp.Message)
	})

	t.Run("Should recover a failed run into a structured failure payload", func(t *testing.T) {
		runner := &fakeRunner{outcome: &DispatchOutcome{ExecID: execID}}
		live := &fakeCompletionSource{
			raw: execution.NewLive(&execution.LiveRun{
				Status: core.StatusFailed,
				Data: map[string]any{
					"resultData": map[string]any{
						"error": map[string]any{"message": "node blew up"},
					},
				},
			}),
		}
		svc := newTestService(chatWorkflow(), runner, live, &fakeExecutionRepo{})

		resp, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf1"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "node blew up", resp.Message)
	})

	t.Run("Should dispatch without a synthetic start when no trigger matches", func(t *testing.T) {
		wf := &workflow.Config{
			ID:                     "wf2",
			AvailableForInvocation: true,
			Nodes:                  []workflow.Node{{Name: "Set", Type: workflow.NodeType("set")}},
		}
		runner := &fakeRunner{outcome: &DispatchOutcome{ExecID: execID}}
		live := &fakeCompletionSource{
			raw: execution.NewLive(&execution.LiveRun{Status: core.StatusSuccess}),
		}
		svc := newTestService(wf, runner, live, &fakeExecutionRepo{})

		resp, err := svc.Invoke(t.Context(), "user", &Input{WorkflowID: "wf2"})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		require.NotNil(t, runner.lastReq)
		assert.Nil(t, runner.lastReq.Synthetic)
	})
}
