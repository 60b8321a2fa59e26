package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskNotes/internal/logger"
	"taskNotes/internal/models/task"
	repo "taskNotes/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Clock supplies timestamps so tests can step time deterministically.
type Clock func() time.Time

// TaskService validates and applies every mutation against the store. It is
// the only writer.
type TaskService struct {
	repo TaskRepository
	now  Clock
}

func NewTaskService(repo TaskRepository, clock Clock) TaskService {
	if clock == nil {
		clock = time.Now
	}
	return TaskService{
		repo: repo,
		now:  clock,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// Create validates title/description, assigns an id and timestamps, and
// persists the new task. On validation failure the store is untouched.
func (s *TaskService) Create(ctx context.Context, title, description string) (*task.Task, error) {
	title, description, err := validateFields(title, description)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &task.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repo.ErrDuplicateKey) {
			// Generated uuids should never collide. Log and surface as a
			// generic failure.
			logger.Error("Service: duplicate id on create", err,
				zap.String("task_id", t.ID.String()))
		}
		return nil, fmt.Errorf("create task: %w", err)
	}

	return t, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// Update replaces title/description and refreshes UpdatedAt. CreatedAt and
// IsCompleted are untouched.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, title, description string) (*task.Task, error) {
	title, description, err := validateFields(title, description)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task for update: %w", err)
	}

	t.Title = title
	t.Description = description
	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return t, nil
}

// ToggleCompleted flips IsCompleted and refreshes UpdatedAt.
func (s *TaskService) ToggleCompleted(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task for toggle: %w", err)
	}

	t.IsCompleted = !t.IsCompleted
	t.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle task: %w", err)
	}

	return t, nil
}

// Delete removes the task permanently. No soft delete, no tombstone.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// List returns tasks newest-created-first, restricted by a case-insensitive
// substring filter over title and description when filter is non-empty.
func (s *TaskService) List(ctx context.Context, filter string) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx, strings.TrimSpace(filter))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func validateFields(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return "", "", newValidationError("title", ReasonEmpty)
	}
	if len([]rune(title)) > task.MaxTitleLen {
		return "", "", newValidationError("title", ReasonTooLong)
	}
	if len([]rune(description)) > task.MaxDescriptionLen {
		return "", "", newValidationError("description", ReasonTooLong)
	}

	return title, description, nil
}
