package bridge

import (
	"context"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/flowgate/flowgate/engine/workflow"
)

type fakeWorkflowRepo struct {
	workflows map[string]*workflow.Config
}

func (f *fakeWorkflowRepo) Get(_ context.Context, workflowID string) (*workflow.Config, error) {
	wf, ok := f.workflows[workflowID]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return wf, nil
}

type fakeRunner struct {
	outcome *DispatchOutcome
	err     error
	lastReq *RunRequest
}

func (f *fakeRunner) Execute(_ context.Context, req *RunRequest) (*DispatchOutcome, error) {
	f.lastReq = req
	return f.outcome, f.err
}

type fakeCompletionSource struct {
	raw *execution.Raw
	err error
}

func (f *fakeCompletionSource) Await(_ context.Context, _ core.ID) (*execution.Raw, error) {
	return f.raw, f.err
}

type fakeExecutionRepo struct {
	records map[core.ID]*execution.Record
	err     error
	lastGet *execution.GetOptions
}

func (f *fakeExecutionRepo) Get(_ context.Context, execID core.ID, opts execution.GetOptions) (*execution.Record, error) {
	f.lastGet = &opts
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.records[execID]
	if !ok {
		return nil, execution.ErrNotFound
	}
	return record, nil
}

func (f *fakeExecutionRepo) Create(_ context.Context, _ *execution.Record) error {
	return nil
}

func (f *fakeExecutionRepo) Finish(_ context.Context, _ *execution.Record) error {
	return nil
}

func neverStartable(_ context.Context, _ string, _ *workflow.Config) (bool, error) {
	return false, nil
}

func alwaysStartable(_ context.Context, _ string, _ *workflow.Config) (bool, error) {
	return true, nil
}
