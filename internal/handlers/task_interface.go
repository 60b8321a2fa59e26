package handlers

import (
	"context"

	"taskNotes/internal/models/task"

	"github.com/google/uuid"
)

type TaskService interface {
	Create(ctx context.Context, title, description string) (*task.Task, error)
	GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	Update(ctx context.Context, id uuid.UUID, title, description string) (*task.Task, error)
	ToggleCompleted(ctx context.Context, id uuid.UUID) (*task.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter string) ([]*task.Task, error)
	HealthCheck(ctx context.Context) error
}
