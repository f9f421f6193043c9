package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vansh-agarwal/Agent/internal/models"
)

var engineNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type memTaskRepo struct {
	tasks []models.Task
}

func (r *memTaskRepo) Store(ctx context.Context, task *models.Task) error {
	task.ID = int64(len(r.tasks) + 1)
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *memTaskRepo) FindByID(ctx context.Context, id int64, userEmail string) (*models.Task, error) {
	for i := range r.tasks {
		if r.tasks[i].ID == id && r.tasks[i].UserEmail == userEmail {
			return &r.tasks[i], nil
		}
	}
	return nil, errors.New("task not found")
}

func (r *memTaskRepo) FindAll(ctx context.Context, userEmail string, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.UserEmail == userEmail {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *models.Task) error { return nil }

func (r *memTaskRepo) Delete(ctx context.Context, id int64, userEmail string) error { return nil }

func (r *memTaskRepo) ListByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

type memEventRepo struct {
	events []models.CalendarEvent
}

func (r *memEventRepo) Store(ctx context.Context, event *models.CalendarEvent) error {
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, *event)
	return nil
}

func (r *memEventRepo) FindByID(ctx context.Context, id int64, userEmail string) (*models.CalendarEvent, error) {
	for i := range r.events {
		if r.events[i].ID == id && r.events[i].UserEmail == userEmail {
			return &r.events[i], nil
		}
	}
	return nil, errors.New("event not found")
}

func (r *memEventRepo) FindAll(ctx context.Context, userEmail string) ([]models.CalendarEvent, error) {
	return r.events, nil
}

func (r *memEventRepo) Delete(ctx context.Context, id int64, userEmail string) error { return nil }

func (r *memEventRepo) ListAll(ctx context.Context) ([]models.CalendarEvent, error) {
	return r.events, nil
}

type memReminderRepo struct {
	reminders []models.Reminder
}

func (r *memReminderRepo) Store(ctx context.Context, reminder *models.Reminder) error {
	reminder.ID = int64(len(r.reminders) + 1)
	r.reminders = append(r.reminders, *reminder)
	return nil
}

func (r *memReminderRepo) ListPending(ctx context.Context) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, rem := range r.reminders {
		if !rem.Sent {
			out = append(out, rem)
		}
	}
	return out, nil
}

type memEmailRepo struct {
	emails []models.EmailNotification
}

func (r *memEmailRepo) Store(ctx context.Context, email *models.EmailNotification) error {
	email.ID = int64(len(r.emails) + 1)
	r.emails = append(r.emails, *email)
	return nil
}

func (r *memEmailRepo) FindRecent(ctx context.Context, userEmail string, limit int) ([]models.EmailNotification, error) {
	return r.emails, nil
}

func (r *memEmailRepo) ListPending(ctx context.Context) ([]models.EmailNotification, error) {
	var out []models.EmailNotification
	for _, e := range r.emails {
		if !e.Sent {
			out = append(out, e)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	sent [][]string
	err  error
}

func (n *recordingNotifier) Send(to []string, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, to)
	return nil
}

func newTestEngine() (*Engine, *memTaskRepo, *memEventRepo, *memReminderRepo, *memEmailRepo, *recordingNotifier) {
	tasks := &memTaskRepo{}
	events := &memEventRepo{}
	reminders := &memReminderRepo{}
	emails := &memEmailRepo{}
	notifier := &recordingNotifier{}
	e := NewEngine(tasks, events, reminders, emails, notifier, nil)
	e.now = func() time.Time { return engineNow }
	return e, tasks, events, reminders, emails, notifier
}

func effectsOfKind(effects []SideEffect, kind string) []SideEffect {
	var out []SideEffect
	for _, e := range effects {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestTickCreatesDeadlineReminders(t *testing.T) {
	e, tasks, _, reminders, _, _ := newTestEngine()
	due := engineNow.Add(5 * time.Hour)
	farAway := engineNow.Add(72 * time.Hour)
	overdue := engineNow.Add(-1 * time.Hour)
	tasks.tasks = []models.Task{
		{ID: 1, UserEmail: "a@x.com", Title: "ship release", Status: models.StatusTodo, Deadline: &due},
		{ID: 2, UserEmail: "a@x.com", Title: "plan offsite", Status: models.StatusTodo, Deadline: &farAway},
		{ID: 3, UserEmail: "a@x.com", Title: "old thing", Status: models.StatusTodo, Deadline: &overdue},
		{ID: 4, UserEmail: "a@x.com", Title: "done thing", Status: models.StatusCompleted, Deadline: &due},
	}

	effects := e.Tick(context.Background())

	created := effectsOfKind(effects, "reminder_created")
	require.Len(t, created, 1)
	require.Equal(t, "Task 'ship release' is due in 5 hours!", created[0].Detail)
	require.Len(t, reminders.reminders, 1)
	require.Equal(t, engineNow.Add(time.Hour), reminders.reminders[0].ReminderTime)

	// A second tick sees the pending reminder and does not duplicate it.
	effects = e.Tick(context.Background())
	require.Empty(t, effectsOfKind(effects, "reminder_created"))
	require.Len(t, reminders.reminders, 1)
}

func TestTickDispatchesDueReminders(t *testing.T) {
	e, _, _, reminders, _, notifier := newTestEngine()
	reminders.reminders = []models.Reminder{
		{ID: 1, UserEmail: "a@x.com", ReminderTime: engineNow.Add(-time.Minute), Message: "Task 'ship release' is due in 5 hours!"},
		{ID: 2, UserEmail: "a@x.com", ReminderTime: engineNow.Add(time.Hour), Message: "not yet"},
	}

	effects := e.Tick(context.Background())

	sent := effectsOfKind(effects, "reminder_sent")
	require.Len(t, sent, 1)
	require.Equal(t, [][]string{{"a@x.com"}}, notifier.sent)

	// Delivery is at-least-once: nothing marks the reminder sent, so the next
	// tick delivers it again.
	e.Tick(context.Background())
	require.Len(t, notifier.sent, 2)
}

func TestTickDeliveryFailureIsASideEffectNotAnError(t *testing.T) {
	e, _, _, reminders, _, notifier := newTestEngine()
	notifier.err = errors.New("smtp down")
	reminders.reminders = []models.Reminder{
		{ID: 1, UserEmail: "a@x.com", ReminderTime: engineNow.Add(-time.Minute), Message: "ping"},
	}

	effects := e.Tick(context.Background())

	failed := effectsOfKind(effects, "delivery_failed")
	require.Len(t, failed, 1)
	require.Contains(t, failed[0].Detail, "smtp down")
}

func TestTickFlushesQueuedEmails(t *testing.T) {
	e, _, _, _, emails, notifier := newTestEngine()
	emails.emails = []models.EmailNotification{
		{ID: 1, UserEmail: "a@x.com", Recipient: "b@y.com", Subject: "minutes", Body: "attached"},
		{ID: 2, UserEmail: "a@x.com", Recipient: "c@z.com", Subject: "done", Body: "done", Sent: true},
	}

	effects := e.Tick(context.Background())

	sent := effectsOfKind(effects, "email_sent")
	require.Len(t, sent, 1)
	require.Equal(t, "minutes", sent[0].Detail)
	require.Equal(t, [][]string{{"b@y.com"}}, notifier.sent)
}

func TestTickReportsConflicts(t *testing.T) {
	e, _, events, _, _, _ := newTestEngine()
	events.events = []models.CalendarEvent{
		{ID: 1, Title: "standup", StartTime: engineNow, EndTime: engineNow.Add(time.Hour)},
		{ID: 2, Title: "review", StartTime: engineNow.Add(30 * time.Minute), EndTime: engineNow.Add(90 * time.Minute)},
	}

	effects := e.Tick(context.Background())

	conflicts := effectsOfKind(effects, "conflict_detected")
	require.Len(t, conflicts, 1)
	require.Contains(t, conflicts[0].Detail, "standup")
	require.Contains(t, conflicts[0].Detail, "review")
}

func TestDetectConflictsOverlapWindow(t *testing.T) {
	a := models.CalendarEvent{ID: 1, Title: "a", StartTime: engineNow, EndTime: engineNow.Add(time.Hour)}
	b := models.CalendarEvent{ID: 2, Title: "b", StartTime: engineNow.Add(30 * time.Minute), EndTime: engineNow.Add(2 * time.Hour)}

	conflicts := DetectConflicts([]models.CalendarEvent{a, b})

	require.Len(t, conflicts, 1)
	require.Equal(t, engineNow.Add(30*time.Minute), conflicts[0].OverlapStart)
	require.Equal(t, engineNow.Add(time.Hour), conflicts[0].OverlapEnd)
}

func TestDetectConflictsBackToBackIsFine(t *testing.T) {
	a := models.CalendarEvent{ID: 1, StartTime: engineNow, EndTime: engineNow.Add(time.Hour)}
	b := models.CalendarEvent{ID: 2, StartTime: engineNow.Add(time.Hour), EndTime: engineNow.Add(2 * time.Hour)}

	require.Empty(t, DetectConflicts([]models.CalendarEvent{a, b}))
}

func TestAutoScheduleSequentialWithGaps(t *testing.T) {
	thirty := 30
	tasks := []models.Task{
		{ID: 1, Title: "first"},
		{ID: 2, Title: "second", EstimatedDuration: &thirty},
	}

	scheduled := AutoSchedule(tasks, engineNow)

	require.Len(t, scheduled, 2)
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.Equal(t, day, scheduled[0].SuggestedStart)
	require.Equal(t, day.Add(time.Hour), scheduled[0].SuggestedEnd)
	// 60 minutes plus the 15 minute gap.
	require.Equal(t, day.Add(75*time.Minute), scheduled[1].SuggestedStart)
	require.Equal(t, day.Add(105*time.Minute), scheduled[1].SuggestedEnd)
}

func TestAutoScheduleRollsOverPastWorkday(t *testing.T) {
	long := 8 * 60
	tasks := []models.Task{
		{ID: 1, Title: "all day", EstimatedDuration: &long},
		{ID: 2, Title: "next morning"},
	}

	scheduled := AutoSchedule(tasks, engineNow)

	require.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), scheduled[1].SuggestedStart)
}
