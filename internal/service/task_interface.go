package service

import (
	"context"
	"time"

	"tlist/internal/identity"
	"tlist/internal/models/task"
	"tlist/internal/store"

	"github.com/google/uuid"
)

// Store - операции хранилища, которые нужны сервису.
type Store interface {
	HealthCheck(ctx context.Context) error

	AddTask(ctx context.Context, title string, options ...task.TaskOption) (uuid.UUID, error)
	UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) error
	RemoveTask(ctx context.Context, id uuid.UUID) error
	ToggleTaskCompletion(ctx context.Context, id uuid.UUID) error

	AddDailyTask(ctx context.Context, title string) (uuid.UUID, error)
	RemoveDailyTask(ctx context.Context, id uuid.UUID) error
	ToggleDailyTaskCompletion(ctx context.Context, id uuid.UUID) error
	ResetDailyTasks(ctx context.Context) error

	AddCategory(ctx context.Context, name, color string) (uuid.UUID, error)
	RemoveCategory(ctx context.Context, id uuid.UUID) error

	SetActiveView(ctx context.Context, view task.View) error
	SetActiveCategory(ctx context.Context, categoryID *uuid.UUID) error

	Tasks() []task.Task
	DailyTasks() []task.DailyTask
	Categories() []task.Category
	ActiveView() task.View
	ActiveCategory() *uuid.UUID
	VisibleTasks(viewer identity.Viewer) []task.Task
	Stats() store.Stats
	DailyStats() store.Stats
	TasksDueOn(day time.Time) []task.Task
}

var _ Store = (*store.Store)(nil)
