package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	geminiReady   bool
	telegramReady bool
	mlReady       bool
	calendarReady bool
}

func NewStatusHandler(geminiReady, telegramReady, mlReady, calendarReady bool) *StatusHandler {
	return &StatusHandler{
		geminiReady:   geminiReady,
		telegramReady: telegramReady,
		mlReady:       mlReady,
		calendarReady: calendarReady,
	}
}

// GET /api/status
func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"integrations": gin.H{
			"gemini":   h.geminiReady,
			"telegram": h.telegramReady,
			"ml":       h.mlReady,
			"calendar": h.calendarReady,
		},
	})
}
