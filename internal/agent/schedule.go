package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
)

const maxSchedulerEvents = 10

// SlotSuggestion is a recommended start time for a new event.
type SlotSuggestion struct {
	Time      time.Time `json:"suggested_time"`
	Reasoning string    `json:"reasoning"`
}

// ScheduleAdvisor suggests a free time slot. Without a generator, or on any
// model failure, it suggests the next full hour.
type ScheduleAdvisor struct {
	generator Generator
	now       func() time.Time
}

func NewScheduleAdvisor(generator Generator) *ScheduleAdvisor {
	return &ScheduleAdvisor{generator: generator, now: time.Now}
}

func (a *ScheduleAdvisor) SuggestSlot(ctx context.Context, events []models.CalendarEvent, durationMinutes int) SlotSuggestion {
	if a.generator == nil {
		return a.fallback()
	}

	raw, err := a.generator.Generate(ctx, buildSchedulePrompt(events, durationMinutes, a.now()))
	if err != nil {
		log.Printf("[agent][suggest][fallback] generate: %v", err)
		return a.fallback()
	}

	var parsed struct {
		SuggestedTime string `json:"suggested_time"`
		Reasoning     string `json:"reasoning"`
	}
	if err := unmarshalModelJSON(raw, &parsed); err != nil {
		log.Printf("[agent][suggest][fallback] %v", err)
		return a.fallback()
	}
	slot, err := time.Parse(time.RFC3339, parsed.SuggestedTime)
	if err != nil {
		log.Printf("[agent][suggest][fallback] bad suggested_time %q: %v", parsed.SuggestedTime, err)
		return a.fallback()
	}
	return SlotSuggestion{Time: slot, Reasoning: parsed.Reasoning}
}

func (a *ScheduleAdvisor) fallback() SlotSuggestion {
	now := a.now()
	next := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour)
	return SlotSuggestion{Time: next, Reasoning: "Next available hour slot"}
}

func buildSchedulePrompt(events []models.CalendarEvent, durationMinutes int, now time.Time) string {
	if len(events) > maxSchedulerEvents {
		events = events[:maxSchedulerEvents]
	}
	summaries := make([]map[string]any, 0, len(events))
	for _, e := range events {
		summaries = append(summaries, map[string]any{
			"title": e.Title,
			"start": e.StartTime,
			"end":   e.EndTime,
		})
	}
	body, _ := json.MarshalIndent(summaries, "", "  ")

	return fmt.Sprintf(`Analyze these existing events and suggest the best time for a %d-minute meeting:

Existing events:
%s

Current time: %s

Suggest an optimal time slot. Respond with JSON: {"suggested_time": "ISO datetime", "reasoning": "brief explanation"}`,
		durationMinutes, body, now.Format(time.RFC3339))
}
