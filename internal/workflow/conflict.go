package workflow

import (
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
)

// Conflict reports a pair of events whose time ranges overlap.
type Conflict struct {
	FirstID      int64     `json:"first_id"`
	FirstTitle   string    `json:"first_title"`
	SecondID     int64     `json:"second_id"`
	SecondTitle  string    `json:"second_title"`
	OverlapStart time.Time `json:"overlap_start"`
	OverlapEnd   time.Time `json:"overlap_end"`
}

// DetectConflicts compares every pair of events. Two events conflict when
// each starts before the other ends; touching boundaries do not count.
func DetectConflicts(events []models.CalendarEvent) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			a, b := events[i], events[j]
			if a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime) {
				conflicts = append(conflicts, Conflict{
					FirstID:      a.ID,
					FirstTitle:   a.Title,
					SecondID:     b.ID,
					SecondTitle:  b.Title,
					OverlapStart: laterOf(a.StartTime, b.StartTime),
					OverlapEnd:   earlierOf(a.EndTime, b.EndTime),
				})
			}
		}
	}
	return conflicts
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
