package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vansh-agarwal/Agent/internal/models"
)

type EventRepository interface {
	Store(ctx context.Context, event *models.CalendarEvent) error
	FindByID(ctx context.Context, id int64, userEmail string) (*models.CalendarEvent, error)
	FindAll(ctx context.Context, userEmail string) ([]models.CalendarEvent, error)
	Delete(ctx context.Context, id int64, userEmail string) error

	// ListAll crosses user scopes; only the workflow engine uses it.
	ListAll(ctx context.Context) ([]models.CalendarEvent, error)
}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, user_email, title, description, start_time, end_time,
       location, attendees, reminder_minutes, google_event_id, created_at`

func (r *eventRepository) Store(ctx context.Context, event *models.CalendarEvent) error {
	query := `
		INSERT INTO events (
			user_email, title, description, start_time, end_time,
			location, attendees, reminder_minutes, google_event_id, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		event.UserEmail, event.Title, event.Description, event.StartTime, event.EndTime,
		event.Location, encodeStrings(event.Attendees), event.ReminderMinutes,
		event.GoogleEventID, event.CreatedAt,
	).Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) FindByID(ctx context.Context, id int64, userEmail string) (*models.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND user_email = $2`
	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id, userEmail))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event not found")
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, userEmail string) ([]models.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_email = $1 ORDER BY start_time ASC`
	rows, err := r.db.QueryContext(ctx, query, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) ListAll(ctx context.Context) ([]models.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_time ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) Delete(ctx context.Context, id int64, userEmail string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE id = $1 AND user_email = $2`, id, userEmail)
	return err
}

func scanEvent(row rowScanner) (*models.CalendarEvent, error) {
	event := &models.CalendarEvent{}
	var attendees string
	if err := row.Scan(
		&event.ID, &event.UserEmail, &event.Title, &event.Description,
		&event.StartTime, &event.EndTime, &event.Location, &attendees,
		&event.ReminderMinutes, &event.GoogleEventID, &event.CreatedAt,
	); err != nil {
		return nil, err
	}
	event.Attendees = decodeStrings(attendees)
	return event, nil
}

func collectEvents(rows *sql.Rows) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
