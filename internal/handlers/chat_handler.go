package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vansh-agarwal/Agent/internal/agent"
	"github.com/vansh-agarwal/Agent/internal/dispatch"
	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/nlp"
	"github.com/vansh-agarwal/Agent/internal/services"
)

type ChatHandler struct {
	resolver   *nlp.Resolver
	decisions  *agent.DecisionMaker
	dispatcher *dispatch.Dispatcher
	responder  *agent.Responder
	sessions   *agent.SessionStore
	tasks      services.TaskService
	events     services.EventService
}

func NewChatHandler(
	resolver *nlp.Resolver,
	decisions *agent.DecisionMaker,
	dispatcher *dispatch.Dispatcher,
	responder *agent.Responder,
	sessions *agent.SessionStore,
	tasks services.TaskService,
	events services.EventService,
) *ChatHandler {
	return &ChatHandler{
		resolver:   resolver,
		decisions:  decisions,
		dispatcher: dispatcher,
		responder:  responder,
		sessions:   sessions,
		tasks:      tasks,
		events:     events,
	}
}

// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Message   string `json:"message" binding:"required"`
		SessionID string `json:"session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[chat][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := userScope(c)
	ctx := c.Request.Context()
	session := h.sessions.Get(req.SessionID)
	log.Printf("[chat] scope=%s session=%s message=%q", scope, session.ID(), req.Message)

	intent := h.resolver.Resolve(req.Message)

	dc := agent.Context{Now: time.Now().Format(time.RFC3339)}
	if tasks, err := h.tasks.GetAll(ctx, scope, models.TaskFilter{}); err == nil {
		dc.Tasks = tasks
	} else {
		log.Printf("[chat][context][warn] tasks: %v", err)
	}
	if events, err := h.events.Upcoming(ctx, scope, time.Now(), 5); err == nil {
		dc.Events = events
	} else {
		log.Printf("[chat][context][warn] events: %v", err)
	}

	decision := h.decisions.Decide(ctx, req.Message, intent, dc)
	result := h.dispatcher.Execute(ctx, decision, scope)
	response := h.responder.Respond(ctx, req.Message, session.Tail(sessionTail), &result)

	session.Append("user", req.Message)
	session.Append("assistant", response)

	log.Printf("[chat][ok] session=%s action=%s success=%v", session.ID(), decision.Action, result.Success)
	c.JSON(http.StatusOK, gin.H{
		"response":      response,
		"action":        decision.Action,
		"action_result": result,
		"intent":        intent.IntentType,
		"confidence":    intent.Confidence,
		"session_id":    session.ID(),
	})
}

const sessionTail = 10
