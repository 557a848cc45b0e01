package mcp

import (
	"context"
	"net/http"

	"github.com/flowgate/flowgate/engine/bridge"
	"github.com/flowgate/flowgate/pkg/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "flowgate"
	serverVersion = "1.0.0"
)

// Server exposes the invocation bridge as an MCP tool server.
type Server struct {
	mcpServer *server.MCPServer
	bridge    *bridge.Service
}

func NewServer(svc *bridge.Service) *Server {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s := &Server{mcpServer: mcpServer, bridge: svc}
	mcpServer.AddTool(runWorkflowTool(), s.handleRunWorkflow)
	return s
}

// Handler returns the streamable HTTP transport for mounting on an existing
// router.
func (s *Server) Handler(endpointPath string) http.Handler {
	return server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithEndpointPath(endpointPath),
	)
}

func runWorkflowTool() mcp.Tool {
	return mcp.NewTool("run_workflow",
		mcp.WithDescription(
			"Run a workflow synchronously and return its result. "+
				"Trigger-driven workflows are started with a synthetic event.",
		),
		mcp.WithString("workflowId",
			mcp.Required(),
			mcp.Description("Identifier of the workflow to run"),
		),
		mcp.WithString("chatInput",
			mcp.Description("Message for workflows started by a chat trigger"),
		),
		mcp.WithObject("formData",
			mcp.Description("Field values for workflows started by a form trigger"),
		),
		mcp.WithObject("webhookData",
			mcp.Description("Request data for workflows started by a webhook trigger"),
		),
	)
}

func (s *Server) handleRunWorkflow(
	ctx context.Context,
	req mcp.CallToolRequest,
) (*mcp.CallToolResult, error) {
	workflowID, err := req.RequireString("workflowId")
	if err != nil {
		return mcp.NewToolResultError("workflowId is required"), nil
	}
	input := &bridge.Input{
		WorkflowID: workflowID,
		Inputs:     toolInputs(req),
	}
	resp, err := s.bridge.Invoke(ctx, userIDFromContext(ctx), input)
	if err != nil {
		logger.FromContext(ctx).Error("Tool invocation rejected",
			"workflow_id", workflowID, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultStructured(resp, resp.Text()), nil
}

func toolInputs(req mcp.CallToolRequest) *bridge.Inputs {
	args := req.GetArguments()
	inputs := &bridge.Inputs{
		ChatInput: req.GetString("chatInput", ""),
	}
	if form, ok := args["formData"].(map[string]any); ok {
		inputs.FormData = form
	}
	if webhook, ok := args["webhookData"].(map[string]any); ok {
		inputs.WebhookData = webhook
	}
	return inputs
}
