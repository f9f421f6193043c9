package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vansh-agarwal/Agent/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64, userEmail string) (*models.Task, error)
	FindAll(ctx context.Context, userEmail string, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64, userEmail string) error

	// ListByStatus crosses user scopes; only the workflow engine uses it.
	ListByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_email, title, description, priority, status,
       deadline, tags, estimated_duration, created_at, updated_at`

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			user_email, title, description, priority, status,
			deadline, tags, estimated_duration, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.UserEmail, task.Title, task.Description, task.Priority, task.Status,
		task.Deadline, encodeStrings(task.Tags), task.EstimatedDuration,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64, userEmail string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_email = $2`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id, userEmail))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task not found")
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, userEmail string, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{"user_email = $1"}
	args := []interface{}{userEmail}
	argID := 2

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argID))
		args = append(args, *filter.Priority)
		argID++
	}

	baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	baseQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) ListByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1 ORDER BY deadline ASC NULLS LAST`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, priority=$3, status=$4, deadline=$5,
			tags=$6, estimated_duration=$7, updated_at=$8
		WHERE id=$9 AND user_email=$10`
	_, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Status, task.Deadline,
		encodeStrings(task.Tags), task.EstimatedDuration, task.UpdatedAt,
		task.ID, task.UserEmail,
	)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64, userEmail string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_email = $2`, id, userEmail)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var tags string
	if err := row.Scan(
		&task.ID, &task.UserEmail, &task.Title, &task.Description,
		&task.Priority, &task.Status, &task.Deadline, &tags,
		&task.EstimatedDuration, &task.CreatedAt, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}
	task.Tags = decodeStrings(tags)
	return task, nil
}

func collectTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// String slices (tags, attendees) live in text columns as JSON.
func encodeStrings(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	return out
}
