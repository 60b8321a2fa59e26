package inmemory

import (
	"context"
	"strings"
	"sync"

	"taskNotes/internal/models/task"
	repo "taskNotes/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage keeps tasks in a map guarded by a RWMutex. The ids slice
// remembers insertion order so List can return newest-created-first without
// sorting on every call.
type TaskStorage struct {
	mtx     sync.RWMutex
	storage map[uuid.UUID]task.Task
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]task.Task),
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.storage[t.ID]; exists {
		return repo.ErrDuplicateKey
	}

	s.storage[t.ID] = *t
	s.ids = append(s.ids, t.ID)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &t, nil
}

func (s *TaskStorage) Update(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[t.ID]; !ok {
		return repo.ErrNotFound
	}

	// Last writer wins, no version check.
	s.storage[t.ID] = *t
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// List returns tasks newest-created-first. A non-empty filter keeps only
// tasks whose title or description contains it as a case-insensitive
// substring.
func (s *TaskStorage) List(ctx context.Context, filter string) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	needle := strings.ToLower(filter)
	res := []*task.Task{}

	for i := len(s.ids) - 1; i >= 0; i-- {
		t := s.storage[s.ids[i]]

		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}

		copied := t
		res = append(res, &copied)
	}

	return res, nil
}
