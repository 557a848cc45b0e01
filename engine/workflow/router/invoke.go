package wfrouter

import (
	"errors"
	"net/http"

	"github.com/flowgate/flowgate/engine/bridge"
	"github.com/flowgate/flowgate/engine/infra/server/router"
	"github.com/flowgate/flowgate/engine/workflow"
	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/gin-gonic/gin"
)

// UserIDHeader identifies the caller on behalf of whom the workflow runs.
const UserIDHeader = "X-User-ID"

type invokeBody struct {
	Inputs *bridge.Inputs `json:"inputs,omitempty"`
}

// handleInvoke runs a workflow synchronously and returns its normalized
// result.
//
// POST /api/v0/workflows/:workflow_id/invoke
func handleInvoke(svc *bridge.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		workflowID := c.Param("workflow_id")
		if workflowID == "" {
			router.RespondWithError(c, router.NewRequestError(
				http.StatusBadRequest, "workflow_id is required", nil))
			return
		}
		var body invokeBody
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				router.RespondWithError(c, router.NewRequestError(
					http.StatusBadRequest, "invalid request body", err))
				return
			}
		}
		ctx := c.Request.Context()
		resp, err := svc.Invoke(ctx, c.GetHeader(UserIDHeader), &bridge.Input{
			WorkflowID: workflowID,
			Inputs:     body.Inputs,
		})
		if err != nil {
			logger.FromContext(ctx).Error("Workflow invocation rejected",
				"workflow_id", workflowID, "error", err)
			router.RespondWithError(c, invokeError(workflowID, err))
			return
		}
		router.RespondOK(c, "workflow invoked", resp)
	}
}

// invokeError maps precondition failures to their HTTP status.
func invokeError(workflowID string, err error) *router.RequestError {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		return router.NewRequestError(http.StatusNotFound,
			"workflow not found", err)
	case errors.Is(err, bridge.ErrWorkflowArchived):
		return router.NewRequestError(http.StatusConflict,
			"workflow is archived", err)
	case errors.Is(err, bridge.ErrWorkflowUnavailable):
		return router.NewRequestError(http.StatusForbidden,
			"workflow is not available for invocation", err)
	default:
		return router.WorkflowExecutionError(workflowID,
			"failed to invoke workflow", err)
	}
}
