package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/vansh-agarwal/Agent/internal/models"
)

const decisionSystemPrompt = `You are ARIA, an intelligent personal task automation assistant.
Your role is to help users manage their tasks, calendar events, and emails efficiently.

When the user asks you to do something, respond with a JSON object containing:
- action: one of create_task, create_event, send_email, query_tasks, query_events, general_response, ml_prediction
- parameters: object with the action parameters
- response: a friendly response message

For create_task:
- parameters should include: title, description (optional), priority (LOW/MEDIUM/HIGH/URGENT), datetime (ISO deadline, optional)

For create_event:
- parameters should include: title, datetime (ISO format), duration (minutes), location (optional)

For send_email:
- parameters should include: emails (array), title (subject), description (body)

Categorization rules:
- If the request carries a concrete clock time it is an event, even if it also mentions "task".
- If the request mentions a task, todo or "remind me" and has no clock time, it is a task.
- Open-domain questions or requests for explanations and advice are general_response.
- Explicit prediction requests are ml_prediction.

Always respond with valid JSON only.`

// DecisionMaker optionally augments a rule-based intent with a generative-model
// pass. Any transport or parse failure degrades to the rule-based result; the
// base intent is always attached to the returned decision.
type DecisionMaker struct {
	generator Generator
}

func NewDecisionMaker(generator Generator) *DecisionMaker {
	return &DecisionMaker{generator: generator}
}

func (d *DecisionMaker) Decide(ctx context.Context, text string, base models.UserIntent, dc Context) models.Decision {
	if d.generator == nil {
		return FallbackDecision(base)
	}

	raw, err := d.generator.Generate(ctx, buildDecisionPrompt(text, dc))
	if err != nil {
		log.Printf("[agent][decide][fallback] generate: %v", err)
		return FallbackDecision(base)
	}

	var parsed struct {
		Action     string         `json:"action"`
		Parameters map[string]any `json:"parameters"`
		Response   string         `json:"response"`
	}
	if err := unmarshalModelJSON(raw, &parsed); err != nil {
		log.Printf("[agent][decide][fallback] %v", err)
		return FallbackDecision(base)
	}
	if parsed.Action == "" {
		log.Printf("[agent][decide][fallback] response carries no action")
		return FallbackDecision(base)
	}
	if parsed.Parameters == nil {
		parsed.Parameters = map[string]any{}
	}

	return models.Decision{
		Action:     models.ActionType(parsed.Action),
		Parameters: parsed.Parameters,
		Reasoning:  parsed.Response,
		BaseIntent: &base,
	}
}

// FallbackDecision reinterprets a rule-based intent as an executable decision.
func FallbackDecision(base models.UserIntent) models.Decision {
	params := base.Entities
	if params == nil {
		params = map[string]any{}
	}
	return models.Decision{
		Action:     models.ActionType(base.IntentType),
		Parameters: params,
		Reasoning:  "Based on natural language processing",
		BaseIntent: &base,
	}
}

func buildDecisionPrompt(text string, dc Context) string {
	tasks := dc.Tasks
	if len(tasks) > maxContextTasks {
		tasks = tasks[:maxContextTasks]
	}
	events := dc.Events
	if len(events) > maxContextEvents {
		events = events[:maxContextEvents]
	}

	contextJSON, _ := json.MarshalIndent(map[string]any{
		"existing_tasks":  tasks,
		"upcoming_events": events,
		"current_time":    dc.Now,
	}, "", "  ")

	return fmt.Sprintf(`%s

User request: %q

Current context:
%s

Respond with a JSON object only. No markdown, no explanation, just the JSON.`,
		decisionSystemPrompt, text, contextJSON)
}
