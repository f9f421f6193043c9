package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vansh-agarwal/Agent/internal/models"
)

// Responder produces the conversational reply shown to the user after an
// action was dispatched. A successful action result always yields a canned
// confirmation; otherwise the generator is asked for a short reply, with a
// keyword table as the last resort.
type Responder struct {
	generator Generator
}

func NewResponder(generator Generator) *Responder {
	return &Responder{generator: generator}
}

func (r *Responder) Respond(ctx context.Context, userMessage string, history []Message, result *models.ActionResult) string {
	if result != nil && result.Success {
		switch result.Type {
		case "task_created":
			return "Done! I've created that task for you. You can see it in your task list."
		case "event_created":
			return "Great! I've scheduled that event on your calendar."
		case "email_sent":
			return "Email sent successfully!"
		case "tasks_retrieved":
			if n := payloadCount(result); n > 0 {
				return fmt.Sprintf("You have %d task(s). Check the tasks panel to see them all.", n)
			}
			return "You don't have any tasks yet. Want me to create one?"
		case "events_retrieved":
			if n := payloadCount(result); n > 0 {
				return fmt.Sprintf("You have %d upcoming event(s). Check your calendar panel.", n)
			}
			return "No upcoming events. Shall I schedule something?"
		}
	}

	if r.generator != nil {
		prompt := buildChatPrompt(userMessage, history)
		reply, err := r.generator.Generate(ctx, prompt)
		if err == nil && strings.TrimSpace(reply) != "" {
			return strings.TrimSpace(reply)
		}
		if err != nil {
			log.Printf("[agent][respond][fallback] generate: %v", err)
		}
	}

	return keywordResponse(userMessage)
}

func payloadCount(result *models.ActionResult) int {
	if result.Payload == nil {
		return 0
	}
	if n, ok := result.Payload["count"].(int); ok {
		return n
	}
	return 0
}

func buildChatPrompt(userMessage string, history []Message) string {
	var b strings.Builder
	b.WriteString("You are ARIA, a helpful AI assistant. Respond conversationally to the user.\n")
	b.WriteString("Keep responses brief and friendly. If you performed an action, confirm it.\n\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&b, "\nUser: %s\n\nRespond naturally in 1-2 sentences.", userMessage)
	return b.String()
}

func keywordResponse(userMessage string) string {
	msg := strings.ToLower(userMessage)
	switch {
	case containsAny(msg, "task", "todo", "remind"):
		return "I'll create that task for you. Check your task list!"
	case containsAny(msg, "meeting", "schedule", "calendar", "event"):
		return "I'll add that to your calendar. Check the events section!"
	case containsAny(msg, "email", "send", "mail"):
		return "Use the email form to send your message."
	case containsAny(msg, "hi", "hello", "hey"):
		return "Hello! I can help you create tasks, schedule events, and compose emails. Just tell me what you need!"
	case containsAny(msg, "help", "what can"):
		return "I can help you with:\n- Creating tasks: 'Add task to review documents'\n- Scheduling events: 'Schedule meeting tomorrow at 2pm'\n- Sending emails: 'Email john about the project'"
	}
	return "I'm processing your request. Check your tasks and calendar for updates!"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
