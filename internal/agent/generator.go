package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/vansh-agarwal/Agent/internal/models"
)

// Generator is the generative-model collaborator. Implementations may time out
// or fail; callers attempt the call at most once and fall back deterministically.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Context bounds the data injected into a model prompt: at most 10 prior tasks
// and 5 upcoming events, plus the current timestamp.
type Context struct {
	Tasks  []models.Task
	Events []models.CalendarEvent
	Now    string
}

const (
	maxContextTasks  = 10
	maxContextEvents = 5
)

// stripCodeFence unwraps a response from surrounding markdown fence markers.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// unmarshalModelJSON parses a model response, repairing sloppy JSON before
// giving up.
func unmarshalModelJSON(raw string, v any) error {
	body := stripCodeFence(raw)
	if err := json.Unmarshal([]byte(body), v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(body)
	if err != nil {
		return fmt.Errorf("repair model response: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("parse repaired model response: %w", err)
	}
	return nil
}
