package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vansh-agarwal/Agent/internal/models"
)

var prioritizeNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func taskFixture(id int64, priority models.TaskPriority, deadline *time.Time) models.Task {
	return models.Task{ID: id, Title: "task", Priority: priority, Deadline: deadline}
}

func hoursAhead(h int) *time.Time {
	t := prioritizeNow.Add(time.Duration(h) * time.Hour)
	return &t
}

func ids(tasks []models.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestDeterministicOrderByPriorityThenDeadline(t *testing.T) {
	p := NewPrioritizer(nil)
	p.now = func() time.Time { return prioritizeNow }

	tasks := []models.Task{
		taskFixture(1, models.PriorityLow, nil),
		taskFixture(2, models.PriorityUrgent, hoursAhead(48)),
		taskFixture(3, models.PriorityHigh, hoursAhead(2)),
		taskFixture(4, models.PriorityUrgent, hoursAhead(1)),
		taskFixture(5, models.PriorityMedium, nil),
	}

	ordered := p.Prioritize(context.Background(), tasks)
	require.Equal(t, []int64{4, 2, 3, 5, 1}, ids(ordered))
}

func TestDeterministicUnknownPriorityRanksAsMedium(t *testing.T) {
	p := NewPrioritizer(nil)
	p.now = func() time.Time { return prioritizeNow }

	tasks := []models.Task{
		taskFixture(1, models.TaskPriority("BOGUS"), hoursAhead(5)),
		taskFixture(2, models.PriorityHigh, nil),
		taskFixture(3, models.PriorityMedium, hoursAhead(10)),
	}

	ordered := p.Prioritize(context.Background(), tasks)
	require.Equal(t, []int64{2, 1, 3}, ids(ordered))
}

func TestPrioritizeModelOrderIsRespected(t *testing.T) {
	gen := &fakeGenerator{response: `{"prioritized_ids": [3, 1, 2], "reasoning": "deadline pressure"}`}
	p := NewPrioritizer(gen)
	p.now = func() time.Time { return prioritizeNow }

	tasks := []models.Task{
		taskFixture(1, models.PriorityLow, nil),
		taskFixture(2, models.PriorityHigh, nil),
		taskFixture(3, models.PriorityMedium, nil),
	}

	ordered := p.Prioritize(context.Background(), tasks)
	require.Equal(t, []int64{3, 1, 2}, ids(ordered))
}

// The output is always a permutation of the input even when the model invents
// ids, repeats them or drops tasks.
func TestPrioritizeModelOutputIsSanitized(t *testing.T) {
	gen := &fakeGenerator{response: `{"prioritized_ids": [99, 2, 2, 3], "reasoning": "?"}`}
	p := NewPrioritizer(gen)
	p.now = func() time.Time { return prioritizeNow }

	tasks := []models.Task{
		taskFixture(1, models.PriorityLow, nil),
		taskFixture(2, models.PriorityHigh, nil),
		taskFixture(3, models.PriorityMedium, nil),
	}

	ordered := p.Prioritize(context.Background(), tasks)
	require.Equal(t, []int64{2, 3, 1}, ids(ordered))
}

func TestPrioritizeFallsBackOnModelError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	p := NewPrioritizer(gen)
	p.now = func() time.Time { return prioritizeNow }

	tasks := []models.Task{
		taskFixture(1, models.PriorityLow, nil),
		taskFixture(2, models.PriorityUrgent, nil),
	}

	ordered := p.Prioritize(context.Background(), tasks)
	require.Equal(t, []int64{2, 1}, ids(ordered))
}

func TestPrioritizeEmptyInput(t *testing.T) {
	p := NewPrioritizer(&fakeGenerator{})

	require.Empty(t, p.Prioritize(context.Background(), nil))
}
