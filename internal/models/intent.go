// internal/models/intent.go
package models

// IntentType is the classified purpose of a user utterance.
type IntentType string

const (
	IntentCreateTask  IntentType = "create_task"
	IntentCreateEvent IntentType = "create_event"
	IntentSendEmail   IntentType = "send_email"
	IntentQueryTasks  IntentType = "query_tasks"
	IntentQueryEvents IntentType = "query_events"
	IntentSetReminder IntentType = "set_reminder"
	IntentReschedule  IntentType = "reschedule"
	IntentUpdateTask  IntentType = "update_task"
	IntentDeleteTask  IntentType = "delete_task"
)

// UserIntent is the immutable result of resolving one utterance.
type UserIntent struct {
	IntentType   IntentType     `json:"intent_type"`
	Entities     map[string]any `json:"entities"`
	Confidence   float64        `json:"confidence"`
	OriginalText string         `json:"original_text"`
}

// ActionType is the executable action vocabulary understood by the dispatcher.
type ActionType string

const (
	ActionCreateTask      ActionType = "create_task"
	ActionCreateEvent     ActionType = "create_event"
	ActionSendEmail       ActionType = "send_email"
	ActionQueryTasks      ActionType = "query_tasks"
	ActionQueryEvents     ActionType = "query_events"
	ActionGeneralResponse ActionType = "general_response"
	ActionMLPrediction    ActionType = "ml_prediction"
	ActionUnknown         ActionType = "unknown"
)

// Decision is a resolved, executable action. BaseIntent is always attached for
// traceability, whichever path produced the decision.
type Decision struct {
	Action     ActionType     `json:"action"`
	Parameters map[string]any `json:"parameters"`
	Reasoning  string         `json:"reasoning"`
	BaseIntent *UserIntent    `json:"base_intent,omitempty"`
}

// ActionResult reports the outcome of one dispatched decision. External-call
// failures are captured here, never raised.
type ActionResult struct {
	Success bool           `json:"success"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
	Error   string         `json:"error,omitempty"`
}
