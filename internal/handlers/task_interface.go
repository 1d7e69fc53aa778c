package handlers

import (
	"context"

	"tlist/internal/models/task"
	"tlist/internal/service"
	"tlist/internal/store"

	"github.com/google/uuid"
)

type Service interface {
	HealthCheck(ctx context.Context) error

	CreateTask(ctx context.Context, in service.CreateTaskInput) (uuid.UUID, error)
	UpdateTask(ctx context.Context, id uuid.UUID, in service.UpdateTaskInput) error
	RemoveTask(ctx context.Context, id uuid.UUID) error
	ToggleTask(ctx context.Context, id uuid.UUID) error
	VisibleTasks(ctx context.Context) []task.Task
	AllTasks(ctx context.Context) []task.Task
	TaskStats(ctx context.Context) store.Stats
	TasksDueOn(ctx context.Context, date string) ([]task.Task, error)

	AddDailyTask(ctx context.Context, title string) (uuid.UUID, error)
	RemoveDailyTask(ctx context.Context, id uuid.UUID) error
	ToggleDailyTask(ctx context.Context, id uuid.UUID) error
	ResetDailyTasks(ctx context.Context) error
	DailyTasks(ctx context.Context) []task.DailyTask
	DailyStats(ctx context.Context) store.Stats

	AddCategory(ctx context.Context, name, color string) (uuid.UUID, error)
	RemoveCategory(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) []task.Category

	View(ctx context.Context) service.ViewState
	SetView(ctx context.Context, in service.ViewInput) (service.ViewState, error)
}

var _ Service = (*service.TaskService)(nil)
