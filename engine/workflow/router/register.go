package wfrouter

import (
	"github.com/flowgate/flowgate/engine/bridge"
	"github.com/gin-gonic/gin"
)

func Register(apiBase *gin.RouterGroup, svc *bridge.Service) {
	workflowsGroup := apiBase.Group("/workflows")
	{
		workflowsGroup.POST("/:workflow_id/invoke", handleInvoke(svc))
	}
}
