package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/services"
)

type MLHandler struct {
	service services.PredictionService
}

func NewMLHandler(service services.PredictionService) *MLHandler {
	return &MLHandler{service: service}
}

// GET /api/ml/status
func (h *MLHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		log.Printf("[ml][status][err] %v", err)
		c.JSON(http.StatusOK, gin.H{"available": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

// POST /api/ml/career-predict
func (h *MLHandler) CareerPredict(c *gin.Context) {
	h.predict(c, services.PredictionCareerIncome)
}

// POST /api/ml/hr-analyze
func (h *MLHandler) HRAnalyze(c *gin.Context) {
	h.predict(c, services.PredictionHRProductivity)
}

// POST /api/ml/customer-segment
func (h *MLHandler) CustomerSegment(c *gin.Context) {
	h.predict(c, services.PredictionCustomerSegment)
}

func (h *MLHandler) predict(c *gin.Context, kind string) {
	var features map[string]any
	if err := c.ShouldBindJSON(&features); err != nil {
		log.Printf("[ml][%s][bind][err] %v", kind, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Predict(c.Request.Context(), kind, features)
	if err != nil {
		log.Printf("[ml][%s][err] %v", kind, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[ml][%s][ok]", kind)
	c.JSON(http.StatusOK, result)
}
