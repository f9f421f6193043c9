package repositories

import (
	"context"
	"database/sql"

	"github.com/vansh-agarwal/Agent/internal/models"
)

type EmailRepository interface {
	Store(ctx context.Context, email *models.EmailNotification) error
	FindRecent(ctx context.Context, userEmail string, limit int) ([]models.EmailNotification, error)
	// ListPending returns every unsent queued email across all user scopes.
	ListPending(ctx context.Context) ([]models.EmailNotification, error)
}

type emailRepository struct {
	db *sql.DB
}

func NewEmailRepository(db *sql.DB) EmailRepository {
	return &emailRepository{db: db}
}

func (r *emailRepository) Store(ctx context.Context, email *models.EmailNotification) error {
	query := `
		INSERT INTO emails (user_email, recipient, subject, body, sent, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		email.UserEmail, email.Recipient, email.Subject, email.Body,
		email.Sent, email.CreatedAt,
	).Scan(&email.ID, &email.CreatedAt)
}

func (r *emailRepository) FindRecent(ctx context.Context, userEmail string, limit int) ([]models.EmailNotification, error) {
	query := `
		SELECT id, user_email, recipient, subject, body, sent, created_at
		FROM emails
		WHERE user_email = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userEmail, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmails(rows)
}

func (r *emailRepository) ListPending(ctx context.Context) ([]models.EmailNotification, error) {
	query := `
		SELECT id, user_email, recipient, subject, body, sent, created_at
		FROM emails
		WHERE sent = false
		ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmails(rows)
}

func collectEmails(rows *sql.Rows) ([]models.EmailNotification, error) {
	var emails []models.EmailNotification
	for rows.Next() {
		var e models.EmailNotification
		if err := rows.Scan(
			&e.ID, &e.UserEmail, &e.Recipient, &e.Subject, &e.Body,
			&e.Sent, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
