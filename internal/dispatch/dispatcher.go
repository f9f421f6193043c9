package dispatch

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/services"
)

// Dispatcher maps a resolved decision onto the external collaborators. Execute
// never panics and never raises: validation failures and external-call
// failures are both captured in the returned ActionResult.
type Dispatcher struct {
	tasks       services.TaskService
	events      services.EventService
	notifier    services.Notifier
	predictions services.PredictionService
	now         func() time.Time
}

func NewDispatcher(tasks services.TaskService, events services.EventService, notifier services.Notifier, predictions services.PredictionService) *Dispatcher {
	return &Dispatcher{
		tasks:       tasks,
		events:      events,
		notifier:    notifier,
		predictions: predictions,
		now:         time.Now,
	}
}

func (d *Dispatcher) Execute(ctx context.Context, decision models.Decision, userEmail string) models.ActionResult {
	params := decision.Parameters
	if params == nil {
		params = map[string]any{}
	}

	switch decision.Action {
	case models.ActionCreateTask:
		return d.createTask(ctx, params, userEmail)
	case models.ActionCreateEvent:
		return d.createEvent(ctx, params, userEmail)
	case models.ActionSendEmail:
		return d.sendEmail(params)
	case models.ActionQueryTasks:
		return d.queryTasks(ctx, userEmail)
	case models.ActionQueryEvents:
		return d.queryEvents(ctx, userEmail)
	case models.ActionGeneralResponse:
		return models.ActionResult{
			Success: true,
			Type:    "general_response",
			Payload: map[string]any{"response": decision.Reasoning},
		}
	case models.ActionMLPrediction:
		return d.mlPrediction(ctx, params)
	}

	return models.ActionResult{
		Success: false,
		Type:    "unknown",
		Error:   "unknown action: " + string(decision.Action),
	}
}

func (d *Dispatcher) createTask(ctx context.Context, params map[string]any, userEmail string) models.ActionResult {
	title := stringParam(params, "title")
	if title == "" {
		title = "Untitled Task"
	}
	priority := models.TaskPriority(strings.ToUpper(stringParam(params, "priority")))
	if !models.IsValidPriority(priority) {
		priority = models.PriorityMedium
	}

	task := &models.Task{
		UserEmail:         userEmail,
		Title:             title,
		Description:       stringParam(params, "description"),
		Priority:          priority,
		Status:            models.StatusTodo,
		Deadline:          timeParam(params, "datetime"),
		Tags:              stringSliceParam(params, "tags"),
		EstimatedDuration: intPtrParam(params, "duration"),
	}

	created, err := d.tasks.Create(ctx, task)
	if err != nil {
		log.Printf("[dispatch][create_task][err] %v", err)
		return models.ActionResult{Success: false, Type: "task_created", Error: err.Error()}
	}
	return models.ActionResult{
		Success: true,
		Type:    "task_created",
		Payload: map[string]any{"task_id": created.ID},
	}
}

func (d *Dispatcher) createEvent(ctx context.Context, params map[string]any, userEmail string) models.ActionResult {
	start := d.now()
	if t := timeParam(params, "datetime"); t != nil {
		start = *t
	}
	duration := 60
	if n, ok := intParam(params, "duration"); ok {
		duration = n
	}

	title := stringParam(params, "title")
	if title == "" {
		title = "Untitled Event"
	}

	event := &models.CalendarEvent{
		UserEmail:       userEmail,
		Title:           title,
		Description:     stringParam(params, "description"),
		StartTime:       start,
		EndTime:         start.Add(time.Duration(duration) * time.Minute),
		Location:        stringParam(params, "location"),
		Attendees:       stringSliceParam(params, "attendees"),
		ReminderMinutes: 15,
	}

	res := d.events.Create(ctx, event)

	payload := map[string]any{}
	if res.GoogleEventID != "" {
		payload["google_event_id"] = res.GoogleEventID
	}
	if res.CalendarErr != nil {
		payload["calendar_error"] = res.CalendarErr.Error()
	}
	if res.StoreErr != nil {
		log.Printf("[dispatch][create_event][err] %v", res.StoreErr)
		return models.ActionResult{Success: false, Type: "event_created", Payload: payload, Error: res.StoreErr.Error()}
	}
	payload["event_id"] = event.ID
	return models.ActionResult{Success: true, Type: "event_created", Payload: payload}
}

func (d *Dispatcher) sendEmail(params map[string]any) models.ActionResult {
	recipients := stringSliceParam(params, "emails")
	subject := stringParam(params, "title")
	body := stringParam(params, "description")

	// Validation happens before any network call is attempted.
	if len(recipients) == 0 || subject == "" || body == "" {
		return models.ActionResult{
			Success: false,
			Type:    "validation_error",
			Error:   "send_email requires at least one recipient, a subject and a body",
		}
	}

	if err := d.notifier.Send(recipients, subject, body); err != nil {
		log.Printf("[dispatch][send_email][err] %v", err)
		return models.ActionResult{Success: false, Type: "email_sent", Error: err.Error()}
	}
	return models.ActionResult{Success: true, Type: "email_sent"}
}

func (d *Dispatcher) queryTasks(ctx context.Context, userEmail string) models.ActionResult {
	tasks, err := d.tasks.GetAll(ctx, userEmail, models.TaskFilter{})
	if err != nil {
		log.Printf("[dispatch][query_tasks][err] %v", err)
		return models.ActionResult{Success: false, Type: "tasks_retrieved", Error: err.Error()}
	}
	return models.ActionResult{
		Success: true,
		Type:    "tasks_retrieved",
		Payload: map[string]any{"tasks": tasks, "count": len(tasks)},
	}
}

func (d *Dispatcher) queryEvents(ctx context.Context, userEmail string) models.ActionResult {
	events, err := d.events.GetAll(ctx, userEmail)
	if err != nil {
		log.Printf("[dispatch][query_events][err] %v", err)
		return models.ActionResult{Success: false, Type: "events_retrieved", Error: err.Error()}
	}
	return models.ActionResult{
		Success: true,
		Type:    "events_retrieved",
		Payload: map[string]any{"events": events, "count": len(events)},
	}
}

func (d *Dispatcher) mlPrediction(ctx context.Context, params map[string]any) models.ActionResult {
	kind := stringParam(params, "kind")
	if kind == "" {
		return models.ActionResult{
			Success: false,
			Type:    "validation_error",
			Error:   "ml_prediction requires a prediction kind",
		}
	}
	features := mapParam(params, "features")

	result, err := d.predictions.Predict(ctx, kind, features)
	if err != nil {
		log.Printf("[dispatch][ml_prediction][err] %v", err)
		return models.ActionResult{Success: false, Type: "ml_prediction", Error: err.Error()}
	}
	return models.ActionResult{Success: true, Type: "ml_prediction", Payload: result}
}

// --- decision parameter coercion; values arrive from JSON or the extractor ---

func stringParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func intParam(params map[string]any, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

func intPtrParam(params map[string]any, key string) *int {
	if n, ok := intParam(params, key); ok {
		return &n
	}
	return nil
}

func timeParam(params map[string]any, key string) *time.Time {
	raw := stringParam(params, key)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func stringSliceParam(params map[string]any, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
	}
	return nil
}

func mapParam(params map[string]any, key string) map[string]any {
	if v, ok := params[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}
