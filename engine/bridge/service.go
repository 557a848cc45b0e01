package bridge

import (
	"context"
	"fmt"

	"github.com/flowgate/flowgate/engine/core"
	"github.com/flowgate/flowgate/engine/execution"
	"github.com/flowgate/flowgate/engine/workflow"
	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// Input is the tool invocation input.
type Input struct {
	WorkflowID string  `json:"workflowId"       validate:"required"`
	Inputs     *Inputs `json:"inputs,omitempty"`
}

// Service runs the full invocation pipeline: classify, synthesize, dispatch,
// wait, normalize, build. One invocation is an independent sequential
// pipeline; the service holds no per-invocation state.
type Service struct {
	workflows   workflow.Repository
	classifier  *Classifier
	synthesizer *Synthesizer
	dispatcher  *Dispatcher
	waiter      *Waiter
	normalizer  *Normalizer
	builder     *ResponseBuilder
	validate    *validator.Validate
}

type ServiceOption func(*Service)

// WithSynthesizer replaces the default synthesizer (used to inject clocks
// and session-id generators).
func WithSynthesizer(s *Synthesizer) ServiceOption {
	return func(svc *Service) {
		svc.synthesizer = s
	}
}

// WithNormalizer replaces the default normalizer.
func WithNormalizer(n *Normalizer) ServiceOption {
	return func(svc *Service) {
		svc.normalizer = n
	}
}

func NewService(
	workflows workflow.Repository,
	checker StartChecker,
	runner Runner,
	live CompletionSource,
	executions execution.Repository,
	opts ...ServiceOption,
) *Service {
	svc := &Service{
		workflows:   workflows,
		classifier:  NewClassifier(checker),
		synthesizer: NewSynthesizer(),
		dispatcher:  NewDispatcher(runner),
		waiter:      NewWaiter(live, executions),
		normalizer:  NewNormalizer(),
		builder:     NewResponseBuilder(),
		validate:    validator.New(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Invoke runs one workflow invocation end to end. Precondition failures
// (missing, archived or non-invocable workflow, invalid input) reject the
// call with an error; everything after dispatch is recovered into the
// returned ToolResponse.
func (s *Service) Invoke(ctx context.Context, userID string, in *Input) (*ToolResponse, error) {
	log := logger.FromContext(ctx)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid invocation input: %w", err)
	}
	wf, err := s.workflows.Get(ctx, in.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow %s: %w", in.WorkflowID, err)
	}
	if wf.IsArchived {
		return nil, fmt.Errorf("%w: %s", ErrWorkflowArchived, wf.ID)
	}
	if !wf.AvailableForInvocation {
		return nil, fmt.Errorf("%w: %s", ErrWorkflowUnavailable, wf.ID)
	}
	req, err := s.buildRunRequest(ctx, userID, wf, in.Inputs)
	if err != nil {
		return nil, err
	}
	outcome, err := s.dispatcher.Dispatch(ctx, req)
	if err != nil {
		log.Error("Workflow dispatch failed", "workflow_id", wf.ID, "error", err)
		resp := s.builder.Build(nil, nil, nil)
		resp.Error = core.NewError(err, "", nil)
		return resp, nil
	}
	if outcome.Failed() || outcome.Waiting {
		return s.builder.Build(outcome, nil, nil), nil
	}
	log.Info("Workflow execution started", "workflow_id", wf.ID, "exec_id", outcome.ExecID)
	raw, waitErr := s.waiter.Wait(ctx, outcome.ExecID)
	var result *execution.Result
	if waitErr == nil {
		result = s.normalizer.Normalize(raw)
	} else {
		log.Warn("Failed to retrieve execution result",
			"workflow_id", wf.ID, "exec_id", outcome.ExecID, "error", waitErr)
	}
	return s.builder.Build(outcome, result, waitErr), nil
}

func (s *Service) buildRunRequest(
	ctx context.Context,
	userID string,
	wf *workflow.Config,
	inputs *Inputs,
) (*RunRequest, error) {
	cls, err := s.classifier.Classify(ctx, userID, wf)
	if err != nil {
		return nil, err
	}
	req := &RunRequest{
		Mode:     ModeManual,
		Workflow: wf,
		UserID:   userID,
	}
	if cls.Entry == nil {
		return req, nil
	}
	kind, ok := cls.Entry.Type.TriggerKind()
	if !ok {
		return nil, fmt.Errorf("node %q is not a synthetic-start trigger", cls.Entry.Name)
	}
	payload, err := s.synthesizer.Synthesize(kind, inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize %s trigger payload: %w", kind, err)
	}
	req.Synthetic = &SyntheticStart{Node: *cls.Entry, Payload: payload}
	return req, nil
}
