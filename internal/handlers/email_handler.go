package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/repositories"
	"github.com/vansh-agarwal/Agent/internal/services"
)

type EmailHandler struct {
	repo     repositories.EmailRepository
	notifier services.Notifier
}

func NewEmailHandler(repo repositories.EmailRepository, notifier services.Notifier) *EmailHandler {
	return &EmailHandler{repo: repo, notifier: notifier}
}

// POST /api/emails/send
func (h *EmailHandler) Send(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient" binding:"required,email"`
		Subject   string `json:"subject" binding:"required"`
		Body      string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[email][send][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := userScope(c)
	record := &models.EmailNotification{
		UserEmail: scope,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	// Delivered mail is recorded as sent so the workflow engine's queue skips
	// it; only a failed delivery stays queued for the tick retry.
	deliverErr := h.notifier.Send([]string{req.Recipient}, req.Subject, req.Body)
	record.Sent = deliverErr == nil

	if err := h.repo.Store(c.Request.Context(), record); err != nil {
		log.Printf("[email][send][err] store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record email"})
		return
	}

	if deliverErr != nil {
		log.Printf("[email][send][err] deliver id=%d: %v", record.ID, deliverErr)
		c.JSON(http.StatusAccepted, gin.H{"id": record.ID, "delivered": false, "error": deliverErr.Error()})
		return
	}

	log.Printf("[email][send][ok] id=%d to=%s", record.ID, req.Recipient)
	c.JSON(http.StatusOK, gin.H{"id": record.ID, "delivered": true})
}

// GET /api/emails/recent?limit=10
func (h *EmailHandler) Recent(c *gin.Context) {
	limit := 10
	if v, ok := c.GetQuery("limit"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	emails, err := h.repo.FindRecent(c.Request.Context(), userScope(c), limit)
	if err != nil {
		log.Printf("[email][recent][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve emails"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"emails": emails, "count": len(emails)})
}
