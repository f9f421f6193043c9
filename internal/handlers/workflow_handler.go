package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/workflow"
)

type WorkflowHandler struct {
	engine *workflow.Engine
}

func NewWorkflowHandler(engine *workflow.Engine) *WorkflowHandler {
	return &WorkflowHandler{engine: engine}
}

// POST /api/workflows/check triggers one automation pass on demand.
func (h *WorkflowHandler) Check(c *gin.Context) {
	effects := h.engine.Tick(c.Request.Context())
	log.Printf("[workflow][check][ok] side_effects=%d", len(effects))
	c.JSON(http.StatusOK, gin.H{"side_effects": effects, "count": len(effects)})
}
