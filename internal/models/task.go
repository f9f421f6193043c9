// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// Task represents a task owned by a single user scope.
type Task struct {
	ID                int64        `json:"id"`
	UserEmail         string       `json:"user_email"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Priority          TaskPriority `json:"priority"`
	Status            TaskStatus   `json:"status"`
	Deadline          *time.Time   `json:"deadline,omitempty"`
	Tags              []string     `json:"tags"`
	EstimatedDuration *int         `json:"estimated_duration,omitempty"` // minutes
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	Status   *TaskStatus
	Priority *TaskPriority
}

func IsValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func IsValidStatus(s TaskStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
