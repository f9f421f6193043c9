package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/agent"
	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/pdf"
	"github.com/vansh-agarwal/Agent/internal/services"
	"github.com/vansh-agarwal/Agent/internal/workflow"
)

type ReportHandler struct {
	generator   pdf.Generator
	tasks       services.TaskService
	events      services.EventService
	prioritizer *agent.Prioritizer
	rootDir     string
}

func NewReportHandler(generator pdf.Generator, tasks services.TaskService, events services.EventService, prioritizer *agent.Prioritizer, rootDir string) *ReportHandler {
	return &ReportHandler{
		generator:   generator,
		tasks:       tasks,
		events:      events,
		prioritizer: prioritizer,
		rootDir:     rootDir,
	}
}

// GET /api/reports/agenda produces the daily agenda PDF: today's events,
// open tasks in priority order, and a suggested working-hours schedule.
func (h *ReportHandler) Agenda(c *gin.Context) {
	scope := userScope(c)
	ctx := c.Request.Context()
	now := time.Now()

	status := models.StatusTodo
	tasks, err := h.tasks.GetAll(ctx, scope, models.TaskFilter{Status: &status})
	if err != nil {
		log.Printf("[report][agenda][err] tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	events, err := h.events.Upcoming(ctx, scope, now, 0)
	if err != nil {
		log.Printf("[report][agenda][err] events: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve events"})
		return
	}

	ordered := h.prioritizer.Prioritize(ctx, tasks)
	schedule := workflow.AutoSchedule(ordered, now)

	rel, err := h.generator.GenerateAgenda(pdf.AgendaData{
		UserEmail: scope,
		Date:      now,
		Tasks:     ordered,
		Events:    events,
		Schedule:  schedule,
	})
	if err != nil {
		log.Printf("[report][agenda][err] generate: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	log.Printf("[report][agenda][ok] scope=%s file=%s", scope, rel)
	c.FileAttachment(h.rootDir+rel, "agenda.pdf")
}
