// internal/models/event.go
package models

import "time"

// CalendarEvent represents a calendar entry. StartTime is always before EndTime.
type CalendarEvent struct {
	ID              int64     `json:"id"`
	UserEmail       string    `json:"user_email"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Location        string    `json:"location"`
	Attendees       []string  `json:"attendees"`
	ReminderMinutes int       `json:"reminder_minutes"`
	GoogleEventID   string    `json:"google_event_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
