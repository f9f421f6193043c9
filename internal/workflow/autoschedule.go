package workflow

import (
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
)

const (
	workdayStartHour = 9
	workdayEndHour   = 17
	taskGapMinutes   = 15
	defaultTaskSpan  = 60
)

// ScheduledTask is a task placed into a concrete working-hours slot.
type ScheduledTask struct {
	TaskID          int64     `json:"task_id"`
	Title           string    `json:"title"`
	SuggestedStart  time.Time `json:"suggested_start"`
	SuggestedEnd    time.Time `json:"suggested_end"`
	DurationMinutes int       `json:"duration_minutes"`
}

// AutoSchedule lays tasks out sequentially starting at 09:00 of the current
// day, with a 15 minute gap between tasks. Once the cursor passes 17:00 the
// remaining tasks roll over to 09:00 of the next day. Input order is
// preserved; callers prioritize first.
func AutoSchedule(tasks []models.Task, now time.Time) []ScheduledTask {
	cursor := time.Date(now.Year(), now.Month(), now.Day(), workdayStartHour, 0, 0, 0, now.Location())
	scheduled := make([]ScheduledTask, 0, len(tasks))

	for _, task := range tasks {
		duration := defaultTaskSpan
		if task.EstimatedDuration != nil && *task.EstimatedDuration > 0 {
			duration = *task.EstimatedDuration
		}
		scheduled = append(scheduled, ScheduledTask{
			TaskID:          task.ID,
			Title:           task.Title,
			SuggestedStart:  cursor,
			SuggestedEnd:    cursor.Add(time.Duration(duration) * time.Minute),
			DurationMinutes: duration,
		})
		cursor = cursor.Add(time.Duration(duration+taskGapMinutes) * time.Minute)
		if cursor.Hour() >= workdayEndHour {
			next := cursor.AddDate(0, 0, 1)
			cursor = time.Date(next.Year(), next.Month(), next.Day(), workdayStartHour, 0, 0, 0, next.Location())
		}
	}
	return scheduled
}
