package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/agent"
	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/services"
	"github.com/vansh-agarwal/Agent/internal/workflow"
)

type EventHandler struct {
	service services.EventService
	advisor *agent.ScheduleAdvisor
}

func NewEventHandler(service services.EventService, advisor *agent.ScheduleAdvisor) *EventHandler {
	return &EventHandler{service: service, advisor: advisor}
}

// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req struct {
		Title           string   `json:"title" binding:"required"`
		Description     string   `json:"description"`
		StartTime       string   `json:"start_time" binding:"required"` // RFC3339
		EndTime         string   `json:"end_time" binding:"required"`   // RFC3339
		Location        string   `json:"location"`
		Attendees       []string `json:"attendees"`
		ReminderMinutes int      `json:"reminder_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[event][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time (RFC3339)"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time (RFC3339)"})
		return
	}

	reminder := req.ReminderMinutes
	if reminder == 0 {
		reminder = 15
	}
	event := &models.CalendarEvent{
		UserEmail:       userScope(c),
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       start,
		EndTime:         end,
		Location:        req.Location,
		Attendees:       req.Attendees,
		ReminderMinutes: reminder,
	}

	res := h.service.Create(c.Request.Context(), event)
	if res.StoreErr != nil {
		log.Printf("[event][create][err] %v", res.StoreErr)
		c.JSON(http.StatusBadRequest, gin.H{"error": res.StoreErr.Error()})
		return
	}

	resp := gin.H{"event": res.Event}
	if res.GoogleEventID != "" {
		resp["google_event_id"] = res.GoogleEventID
	}
	if res.CalendarErr != nil {
		resp["calendar_error"] = res.CalendarErr.Error()
	}
	log.Printf("[event][create][ok] id=%d title=%q", event.ID, event.Title)
	c.JSON(http.StatusCreated, resp)
}

// GET /api/events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	event, err := h.service.GetByID(c.Request.Context(), id, userScope(c))
	if err != nil {
		log.Printf("[event][getByID][404] id=%d: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /api/events?upcoming=true
func (h *EventHandler) GetAll(c *gin.Context) {
	scope := userScope(c)
	ctx := c.Request.Context()

	var (
		events []models.CalendarEvent
		err    error
	)
	if c.Query("upcoming") == "true" {
		limit := 0
		if v, ok := c.GetQuery("limit"); ok {
			limit, _ = strconv.Atoi(v)
		}
		events, err = h.service.Upcoming(ctx, scope, time.Now(), limit)
	} else {
		events, err = h.service.GetAll(ctx, scope)
	}
	if err != nil {
		log.Printf("[event][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, userScope(c)); err != nil {
		log.Printf("[event][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	log.Printf("[event][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// GET /api/events/conflicts
func (h *EventHandler) Conflicts(c *gin.Context) {
	events, err := h.service.GetAll(c.Request.Context(), userScope(c))
	if err != nil {
		log.Printf("[event][conflicts][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve events"})
		return
	}
	conflicts := workflow.DetectConflicts(events)
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts, "count": len(conflicts)})
}

// POST /api/events/suggest-slot { "duration": 60 }
func (h *EventHandler) SuggestSlot(c *gin.Context) {
	var req struct {
		Duration int `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Duration <= 0 {
		req.Duration = 60
	}

	events, err := h.service.Upcoming(c.Request.Context(), userScope(c), time.Now(), 0)
	if err != nil {
		log.Printf("[event][suggest][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve events"})
		return
	}

	suggestion := h.advisor.SuggestSlot(c.Request.Context(), events, req.Duration)
	c.JSON(http.StatusOK, suggestion)
}
