package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"taskNotes/internal/logger"
	"taskNotes/internal/models/task"
	"taskNotes/internal/repository"
	"taskNotes/internal/repository/task/inmemory"
	"taskNotes/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init(true)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context, filter string) ([]*task.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

var _ service.TaskRepository = (*MockTaskRepository)(nil)

// stepClock returns a clock that advances by step on every call, so each
// timestamp the service takes is strictly later than the previous one.
func stepClock(start time.Time, step time.Duration) service.Clock {
	current := start
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantField   string
		wantReason  string
	}{
		{
			name:       "empty title",
			title:      "",
			wantField:  "title",
			wantReason: service.ReasonEmpty,
		},
		{
			name:       "whitespace title",
			title:      "   ",
			wantField:  "title",
			wantReason: service.ReasonEmpty,
		},
		{
			name:       "title too long",
			title:      strings.Repeat("a", 201),
			wantField:  "title",
			wantReason: service.ReasonTooLong,
		},
		{
			name:        "description too long",
			title:       "valid",
			description: strings.Repeat("d", 2001),
			wantField:   "description",
			wantReason:  service.ReasonTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			svc := service.NewTaskService(mockRepo, nil)

			created, err := svc.Create(context.Background(), tt.title, tt.description)

			require.Error(t, err)
			assert.Nil(t, created)

			var vErr *service.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantReason, vErr.Reason)

			// No mutation reached the store.
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskService_Create_Success(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := service.NewTaskService(mockRepo, stepClock(start, time.Second))

	created, err := svc.Create(context.Background(), "  Buy milk  ", " 2%  ")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Buy milk", created.Title, "title is trimmed")
	assert.Equal(t, "2%", created.Description, "description is trimmed")
	assert.False(t, created.IsCompleted)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_Create_TitleAtLimit(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := service.NewTaskService(mockRepo, nil)

	created, err := svc.Create(context.Background(), strings.Repeat("a", 200), "")
	require.NoError(t, err)
	assert.Len(t, created.Title, 200)
}

func TestTaskService_Create_DuplicateKeySurfacesAsFailure(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	svc := service.NewTaskService(mockRepo, nil)

	created, err := svc.Create(context.Background(), "title", "")
	require.Error(t, err)
	assert.Nil(t, created)

	var vErr *service.ValidationError
	assert.False(t, errors.As(err, &vErr), "duplicate key is not a validation error")
	assert.NotErrorIs(t, err, service.ErrNotFound)
}

func TestTaskService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	svc := service.NewTaskService(mockRepo, nil)

	updated, err := svc.Update(context.Background(), uuid.New(), "title", "")
	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Nil(t, updated)
}

func TestTaskService_Update_ValidationSkipsStore(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	svc := service.NewTaskService(mockRepo, nil)

	_, err := svc.Update(context.Background(), uuid.New(), "   ", "desc")
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)

	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTaskService_Toggle_NotFound(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)

	svc := service.NewTaskService(mockRepo, nil)

	toggled, err := svc.ToggleCompleted(context.Background(), uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
	assert.Nil(t, toggled)
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Delete", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	svc := service.NewTaskService(mockRepo, nil)

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, service.ErrNotFound)
}

// The lifecycle tests below run against the real inmemory store so the
// service and store contracts are exercised together.

func newInmemoryService(t *testing.T) (*service.TaskService, service.Clock) {
	t.Helper()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := stepClock(start, time.Second)
	svc := service.NewTaskService(inmemory.NewTaskStorage(), clock)
	return &svc, clock
}

func TestTaskService_CreateThenList(t *testing.T) {
	svc, _ := newInmemoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alpha report", "quarterly numbers")
	require.NoError(t, err)

	tasks, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	got := tasks[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Alpha report", got.Title)
	assert.Equal(t, "quarterly numbers", got.Description)
	assert.False(t, got.IsCompleted)
}

func TestTaskService_FailedCreateLeavesCountUnchanged(t *testing.T) {
	svc, _ := newInmemoryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "keep", "")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "", "x")
	require.Error(t, err)
	_, err = svc.Create(ctx, "   ", "x")
	require.Error(t, err)

	tasks, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTaskService_DeletedIDStaysGone(t *testing.T) {
	svc, _ := newInmemoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "doomed", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	tasks, err := svc.List(ctx, "")
	require.NoError(t, err)
	for _, got := range tasks {
		assert.NotEqual(t, created.ID, got.ID)
	}

	_, err = svc.Update(ctx, created.ID, "new", "")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.ToggleCompleted(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), service.ErrNotFound)
}

func TestTaskService_ToggleTwiceRestoresState(t *testing.T) {
	svc, _ := newInmemoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "flip me", "")
	require.NoError(t, err)
	require.False(t, created.IsCompleted)

	first, err := svc.ToggleCompleted(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.IsCompleted)
	assert.True(t, first.UpdatedAt.After(created.UpdatedAt), "first toggle advances updated_at")

	second, err := svc.ToggleCompleted(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, second.IsCompleted, "double toggle restores the flag")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt), "second toggle advances updated_at")
}

func TestTaskService_ListFilter(t *testing.T) {
	svc, _ := newInmemoryService(t)
	ctx := context.Background()

	alpha, err := svc.Create(ctx, "Alpha report", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Beta plan", "")
	require.NoError(t, err)
	hidden, err := svc.Create(ctx, "Gamma notes", "has alpha content")
	require.NoError(t, err)

	tasks, err := svc.List(ctx, "alpha")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// Newest first: the description match was created last.
	assert.Equal(t, hidden.ID, tasks[0].ID)
	assert.Equal(t, alpha.ID, tasks[1].ID)

	none, err := svc.List(ctx, "zzz-no-match")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTaskService_UpdateRoundTrip(t *testing.T) {
	svc, _ := newInmemoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "old title", "old description")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "new title", "new description")
	require.NoError(t, err)

	got, err := svc.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "new description", got.Description)
	assert.Equal(t, created.CreatedAt, got.CreatedAt, "created_at never changes")
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt), "updated_at advances")
	assert.Equal(t, updated.UpdatedAt, got.UpdatedAt)
	assert.False(t, got.IsCompleted, "update leaves completion untouched")
}

func TestTaskService_HealthCheck(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("HealthCheck", mock.Anything).Return(errors.New("db down"))

	svc := service.NewTaskService(mockRepo, nil)
	assert.Error(t, svc.HealthCheck(context.Background()))
}
