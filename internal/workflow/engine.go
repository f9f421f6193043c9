package workflow

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/repositories"
	"github.com/vansh-agarwal/Agent/internal/services"
)

const deadlineWindow = 24 * time.Hour

// SideEffect describes one observable outcome of a workflow tick.
type SideEffect struct {
	Kind    string         `json:"kind"`
	Detail  string         `json:"detail"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Engine runs the periodic automation pass: it creates reminders for tasks
// approaching their deadline, dispatches due reminders and queued emails over
// the notification channels, and surfaces calendar conflicts. Ticks are
// serialized; a tick never fails as a whole, every problem becomes a side
// effect in the report.
type Engine struct {
	tasks     repositories.TaskRepository
	events    repositories.EventRepository
	reminders repositories.ReminderRepository
	emails    repositories.EmailRepository
	notifier  services.Notifier
	telegram  *services.TelegramService
	now       func() time.Time
	mu        sync.Mutex
}

func NewEngine(
	tasks repositories.TaskRepository,
	events repositories.EventRepository,
	reminders repositories.ReminderRepository,
	emails repositories.EmailRepository,
	notifier services.Notifier,
	telegram *services.TelegramService,
) *Engine {
	return &Engine{
		tasks:     tasks,
		events:    events,
		reminders: reminders,
		emails:    emails,
		notifier:  notifier,
		telegram:  telegram,
		now:       time.Now,
	}
}

// Tick runs one full automation pass and reports everything it did.
func (e *Engine) Tick(ctx context.Context) []SideEffect {
	e.mu.Lock()
	defer e.mu.Unlock()

	var effects []SideEffect
	effects = append(effects, e.createDeadlineReminders(ctx)...)
	effects = append(effects, e.dispatchDueReminders(ctx)...)
	effects = append(effects, e.dispatchQueuedEmails(ctx)...)
	effects = append(effects, e.reportConflicts(ctx)...)
	return effects
}

// createDeadlineReminders schedules a reminder for every open task whose
// deadline falls within the next 24 hours, unless an unsent reminder for
// that task already exists.
func (e *Engine) createDeadlineReminders(ctx context.Context) []SideEffect {
	now := e.now()
	var effects []SideEffect

	tasks, err := e.tasks.ListByStatus(ctx, models.StatusTodo)
	if err != nil {
		log.Printf("[workflow][deadlines][err] %v", err)
		return []SideEffect{{Kind: "error", Detail: "listing open tasks: " + err.Error()}}
	}
	pending, err := e.reminders.ListPending(ctx)
	if err != nil {
		log.Printf("[workflow][deadlines][err] %v", err)
		return []SideEffect{{Kind: "error", Detail: "listing pending reminders: " + err.Error()}}
	}

	covered := map[int64]bool{}
	for _, r := range pending {
		if r.TaskID != nil {
			covered[*r.TaskID] = true
		}
	}

	for _, task := range tasks {
		if task.Deadline == nil || covered[task.ID] {
			continue
		}
		until := task.Deadline.Sub(now)
		if until <= 0 || until >= deadlineWindow {
			continue
		}
		taskID := task.ID
		reminder := &models.Reminder{
			UserEmail:    task.UserEmail,
			TaskID:       &taskID,
			ReminderTime: now.Add(time.Hour),
			Message:      fmt.Sprintf("Task '%s' is due in %d hours!", task.Title, int(until.Hours())),
			CreatedAt:    now,
		}
		if err := e.reminders.Store(ctx, reminder); err != nil {
			log.Printf("[workflow][deadlines][err] store reminder for task %d: %v", task.ID, err)
			effects = append(effects, SideEffect{Kind: "error", Detail: "storing reminder: " + err.Error()})
			continue
		}
		effects = append(effects, SideEffect{
			Kind:    "reminder_created",
			Detail:  reminder.Message,
			Payload: map[string]any{"task_id": task.ID, "reminder_id": reminder.ID},
		})
	}
	return effects
}

// dispatchDueReminders delivers every pending reminder whose time has come.
// Delivery is at-least-once: the sent flag is not flipped here, so a crash
// after delivery re-sends on the next tick rather than losing the reminder.
func (e *Engine) dispatchDueReminders(ctx context.Context) []SideEffect {
	now := e.now()
	var effects []SideEffect

	pending, err := e.reminders.ListPending(ctx)
	if err != nil {
		log.Printf("[workflow][reminders][err] %v", err)
		return []SideEffect{{Kind: "error", Detail: "listing pending reminders: " + err.Error()}}
	}

	for _, reminder := range pending {
		if reminder.ReminderTime.After(now) {
			continue
		}
		subject, body := e.reminderContent(ctx, reminder)

		if err := e.notifier.Send([]string{reminder.UserEmail}, subject, body); err != nil {
			log.Printf("[workflow][reminders][err] deliver reminder %d: %v", reminder.ID, err)
			effects = append(effects, SideEffect{
				Kind:    "delivery_failed",
				Detail:  err.Error(),
				Payload: map[string]any{"reminder_id": reminder.ID},
			})
			continue
		}
		if err := e.telegram.Notify(subject); err != nil {
			log.Printf("[workflow][reminders][warn] telegram for reminder %d: %v", reminder.ID, err)
		}
		effects = append(effects, SideEffect{
			Kind:    "reminder_sent",
			Detail:  subject,
			Payload: map[string]any{"reminder_id": reminder.ID},
		})
	}
	return effects
}

func (e *Engine) reminderContent(ctx context.Context, reminder models.Reminder) (subject, body string) {
	subject = reminder.Message
	body = reminder.Message
	if reminder.TaskID != nil {
		if task, err := e.tasks.FindByID(ctx, *reminder.TaskID, reminder.UserEmail); err == nil {
			subject = "Reminder: " + task.Title
			body = fmt.Sprintf("Reminder: %s\n\n%s", task.Title, task.Description)
		}
	} else if reminder.EventID != nil {
		if event, err := e.events.FindByID(ctx, *reminder.EventID, reminder.UserEmail); err == nil {
			subject = "Reminder: " + event.Title
			body = fmt.Sprintf("Reminder: %s\n\n%s", event.Title, event.Description)
		}
	}
	return subject, body
}

// dispatchQueuedEmails flushes the outbound email queue, at-least-once.
func (e *Engine) dispatchQueuedEmails(ctx context.Context) []SideEffect {
	var effects []SideEffect

	pending, err := e.emails.ListPending(ctx)
	if err != nil {
		log.Printf("[workflow][emails][err] %v", err)
		return []SideEffect{{Kind: "error", Detail: "listing queued emails: " + err.Error()}}
	}

	for _, email := range pending {
		if err := e.notifier.Send([]string{email.Recipient}, email.Subject, email.Body); err != nil {
			log.Printf("[workflow][emails][err] deliver email %d: %v", email.ID, err)
			effects = append(effects, SideEffect{
				Kind:    "delivery_failed",
				Detail:  err.Error(),
				Payload: map[string]any{"email_id": email.ID},
			})
			continue
		}
		effects = append(effects, SideEffect{
			Kind:    "email_sent",
			Detail:  email.Subject,
			Payload: map[string]any{"email_id": email.ID, "recipient": email.Recipient},
		})
	}
	return effects
}

func (e *Engine) reportConflicts(ctx context.Context) []SideEffect {
	events, err := e.events.ListAll(ctx)
	if err != nil {
		log.Printf("[workflow][conflicts][err] %v", err)
		return []SideEffect{{Kind: "error", Detail: "listing events: " + err.Error()}}
	}

	var effects []SideEffect
	for _, c := range DetectConflicts(events) {
		effects = append(effects, SideEffect{
			Kind:   "conflict_detected",
			Detail: fmt.Sprintf("'%s' overlaps '%s'", c.FirstTitle, c.SecondTitle),
			Payload: map[string]any{
				"first_id":      c.FirstID,
				"second_id":     c.SecondID,
				"overlap_start": c.OverlapStart,
				"overlap_end":   c.OverlapEnd,
			},
		})
	}
	return effects
}

// Run drives Tick on a fixed interval until the context is cancelled.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			effects := e.Tick(ctx)
			log.Printf("[workflow][tick] %d side effects", len(effects))
		}
	}
}
