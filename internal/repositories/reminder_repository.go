package repositories

import (
	"context"
	"database/sql"

	"github.com/vansh-agarwal/Agent/internal/models"
)

type ReminderRepository interface {
	Store(ctx context.Context, reminder *models.Reminder) error
	// ListPending returns every unsent reminder across all user scopes.
	ListPending(ctx context.Context) ([]models.Reminder, error)
}

type reminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) ReminderRepository {
	return &reminderRepository{db: db}
}

func (r *reminderRepository) Store(ctx context.Context, reminder *models.Reminder) error {
	query := `
		INSERT INTO reminders (
			user_email, task_id, event_id, reminder_time, message, sent, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		reminder.UserEmail, reminder.TaskID, reminder.EventID,
		reminder.ReminderTime, reminder.Message, reminder.Sent, reminder.CreatedAt,
	).Scan(&reminder.ID, &reminder.CreatedAt)
}

func (r *reminderRepository) ListPending(ctx context.Context) ([]models.Reminder, error) {
	query := `
		SELECT id, user_email, task_id, event_id, reminder_time, message, sent, created_at
		FROM reminders
		WHERE sent = false
		ORDER BY reminder_time ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(
			&rem.ID, &rem.UserEmail, &rem.TaskID, &rem.EventID,
			&rem.ReminderTime, &rem.Message, &rem.Sent, &rem.CreatedAt,
		); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}
