// internal/services/task_service.go
package services

import (
	"context"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64, userEmail string) (*models.Task, error)
	GetAll(ctx context.Context, userEmail string, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id int64, userEmail string, updateData *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id int64, userEmail string) error
}

type taskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64, userEmail string) (*models.Task, error) {
	return s.repo.FindByID(ctx, id, userEmail)
}

func (s *taskService) GetAll(ctx context.Context, userEmail string, filter models.TaskFilter) ([]models.Task, error) {
	return s.repo.FindAll(ctx, userEmail, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, userEmail string, updateData *models.Task) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id, userEmail)
	if err != nil {
		return nil, err
	}
	if existingTask == nil {
		return nil, nil
	}

	existingTask.Title = updateData.Title
	existingTask.Description = updateData.Description
	existingTask.Priority = updateData.Priority
	existingTask.Status = updateData.Status
	existingTask.Deadline = updateData.Deadline
	existingTask.Tags = updateData.Tags
	existingTask.EstimatedDuration = updateData.EstimatedDuration

	existingTask.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	return existingTask, nil
}

func (s *taskService) Delete(ctx context.Context, id int64, userEmail string) error {
	return s.repo.Delete(ctx, id, userEmail)
}
