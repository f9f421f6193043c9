package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/agent"
	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/services"
)

type TaskHandler struct {
	service     services.TaskService
	prioritizer *agent.Prioritizer
}

func NewTaskHandler(service services.TaskService, prioritizer *agent.Prioritizer) *TaskHandler {
	return &TaskHandler{service: service, prioritizer: prioritizer}
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title             string   `json:"title" binding:"required"`
		Description       string   `json:"description"`
		Priority          string   `json:"priority"` // LOW|MEDIUM|HIGH|URGENT
		Deadline          string   `json:"deadline"` // RFC3339
		Tags              []string `json:"tags"`
		EstimatedDuration *int     `json:"estimated_duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := userScope(c)
	priority := models.TaskPriority(strings.ToUpper(req.Priority))
	if req.Priority != "" && !models.IsValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
		return
	}

	var deadline *time.Time
	if req.Deadline != "" {
		t, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			log.Printf("[task][create][err] invalid deadline=%q: %v", req.Deadline, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline (RFC3339)"})
			return
		}
		deadline = &t
	}

	task := &models.Task{
		UserEmail:         scope,
		Title:             req.Title,
		Description:       req.Description,
		Priority:          priority,
		Deadline:          deadline,
		Tags:              req.Tags,
		EstimatedDuration: req.EstimatedDuration,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}
	log.Printf("[task][create][ok] id=%d scope=%s title=%q", created.ID, scope, created.Title)
	c.JSON(http.StatusCreated, created)
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	task, err := h.service.GetByID(c.Request.Context(), id, userScope(c))
	if err != nil {
		log.Printf("[task][getByID][404] id=%d: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /api/tasks
func (h *TaskHandler) GetAll(c *gin.Context) {
	var filter models.TaskFilter
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		if !models.IsValidStatus(st) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		pr := models.TaskPriority(strings.ToUpper(v))
		if !models.IsValidPriority(pr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		filter.Priority = &pr
	}

	tasks, err := h.service.GetAll(c.Request.Context(), userScope(c), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "count": len(tasks)})
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Title             *string  `json:"title"`
		Description       *string  `json:"description"`
		Priority          *string  `json:"priority"`
		Status            *string  `json:"status"`
		Deadline          *string  `json:"deadline"` // RFC3339, empty clears
		Tags              []string `json:"tags"`
		EstimatedDuration *int     `json:"estimated_duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := userScope(c)
	current, err := h.service.GetByID(c.Request.Context(), id, scope)
	if err != nil {
		log.Printf("[task][update][404] id=%d: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	update := *current
	if req.Title != nil {
		update.Title = *req.Title
	}
	if req.Description != nil {
		update.Description = *req.Description
	}
	if req.Priority != nil {
		pr := models.TaskPriority(strings.ToUpper(*req.Priority))
		if !models.IsValidPriority(pr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority"})
			return
		}
		update.Priority = pr
	}
	if req.Status != nil {
		st := models.TaskStatus(*req.Status)
		if !models.IsValidStatus(st) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		update.Status = st
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			update.Deadline = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.Deadline)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline"})
				return
			}
			update.Deadline = &t
		}
	}
	if req.Tags != nil {
		update.Tags = req.Tags
	}
	if req.EstimatedDuration != nil {
		update.EstimatedDuration = req.EstimatedDuration
	}

	updated, err := h.service.Update(c.Request.Context(), id, scope, &update)
	if err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, userScope(c)); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// POST /api/tasks/prioritize
func (h *TaskHandler) Prioritize(c *gin.Context) {
	scope := userScope(c)
	status := models.StatusTodo
	tasks, err := h.service.GetAll(c.Request.Context(), scope, models.TaskFilter{Status: &status})
	if err != nil {
		log.Printf("[task][prioritize][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}

	ordered := h.prioritizer.Prioritize(c.Request.Context(), tasks)
	log.Printf("[task][prioritize][ok] scope=%s count=%d", scope, len(ordered))
	c.JSON(http.StatusOK, gin.H{"tasks": ordered, "count": len(ordered)})
}
