package service

import (
	"context"

	"taskNotes/internal/models/task"

	"github.com/google/uuid"
)

// TaskRepository is the store contract the service writes through. Both the
// inmemory and postgres backends satisfy it.
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	Update(ctx context.Context, t *task.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter string) ([]*task.Task, error)
	HealthCheck(ctx context.Context) error
}
