// internal/models/reminder.go
package models

import "time"

// Reminder links a scheduled notification to exactly one task or one event.
type Reminder struct {
	ID           int64     `json:"id"`
	UserEmail    string    `json:"user_email"`
	TaskID       *int64    `json:"task_id,omitempty"`
	EventID      *int64    `json:"event_id,omitempty"`
	ReminderTime time.Time `json:"reminder_time"`
	Message      string    `json:"message"`
	Sent         bool      `json:"sent"`
	CreatedAt    time.Time `json:"created_at"`
}

// EmailNotification is a queued outbound email picked up by the workflow engine.
type EmailNotification struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"user_email"`
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Sent      bool      `json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}
