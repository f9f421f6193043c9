package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
)

const maxPrioritizeTasks = 20

// Prioritizer orders a task list. The result is always a permutation of the
// input: the augmented path reconstructs it from the returned id list and
// appends anything the model dropped, and any failure falls back to the
// deterministic sort.
type Prioritizer struct {
	generator Generator
	now       func() time.Time
}

func NewPrioritizer(generator Generator) *Prioritizer {
	return &Prioritizer{generator: generator, now: time.Now}
}

func (p *Prioritizer) Prioritize(ctx context.Context, tasks []models.Task) []models.Task {
	if p.generator == nil || len(tasks) == 0 {
		return p.deterministic(tasks)
	}

	raw, err := p.generator.Generate(ctx, buildPrioritizePrompt(tasks, p.now()))
	if err != nil {
		log.Printf("[agent][prioritize][fallback] generate: %v", err)
		return p.deterministic(tasks)
	}

	var parsed struct {
		PrioritizedIDs []int64 `json:"prioritized_ids"`
		Reasoning      string  `json:"reasoning"`
	}
	if err := unmarshalModelJSON(raw, &parsed); err != nil {
		log.Printf("[agent][prioritize][fallback] %v", err)
		return p.deterministic(tasks)
	}

	byID := make(map[int64]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	out := make([]models.Task, 0, len(tasks))
	seen := make(map[int64]bool, len(tasks))
	for _, id := range parsed.PrioritizedIDs {
		if t, ok := byID[id]; ok && !seen[id] {
			out = append(out, t)
			seen[id] = true
		}
	}
	// Tasks the model dropped keep their original relative order.
	for _, t := range tasks {
		if !seen[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// deterministic is a stable sort by (priority rank, hours until deadline).
func (p *Prioritizer) deterministic(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	now := p.now()
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := priorityRank(out[i].Priority), priorityRank(out[j].Priority)
		if ri != rj {
			return ri < rj
		}
		return timeScore(out[i], now) < timeScore(out[j], now)
	})
	return out
}

func priorityRank(p models.TaskPriority) int {
	switch p {
	case models.PriorityUrgent:
		return 0
	case models.PriorityHigh:
		return 1
	case models.PriorityMedium:
		return 2
	case models.PriorityLow:
		return 3
	}
	return 2
}

// timeScore is hours until deadline clamped to [0, 100]; a missing deadline
// counts as far away.
func timeScore(t models.Task, now time.Time) float64 {
	if t.Deadline == nil {
		return 100
	}
	h := t.Deadline.Sub(now).Hours()
	if h < 0 {
		return 0
	}
	if h > 100 {
		return 100
	}
	return h
}

func buildPrioritizePrompt(tasks []models.Task, now time.Time) string {
	if len(tasks) > maxPrioritizeTasks {
		tasks = tasks[:maxPrioritizeTasks]
	}
	summaries := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		summaries = append(summaries, map[string]any{
			"id":                 t.ID,
			"title":              t.Title,
			"deadline":           t.Deadline,
			"priority":           t.Priority,
			"estimated_duration": t.EstimatedDuration,
		})
	}
	body, _ := json.MarshalIndent(summaries, "", "  ")

	return fmt.Sprintf(`Analyze these tasks and suggest optimal prioritization order:

Tasks:
%s

Current time: %s

Provide a JSON object with: {"prioritized_ids": [id1, id2, id3, ...], "reasoning": "brief explanation"}
Respond with JSON only.`, body, now.Format(time.RFC3339))
}
