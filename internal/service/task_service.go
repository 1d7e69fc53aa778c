package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tlist/internal/identity"
	"tlist/internal/logger"
	"tlist/internal/models/task"
	"tlist/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь проверяется ввод от интерфейса, сам store ничего не валидирует

type CreateTaskInput struct {
	Title       string
	Priority    string
	DueDate     string
	DueTime     string
	Description string
	Category    *uuid.UUID
}

// UpdateTaskInput: nil - поле не трогаем, пустая строка у DueDate/Category - снять значение.
type UpdateTaskInput struct {
	Title       *string
	Priority    *string
	DueDate     *string
	DueTime     *string
	Description *string
	Category    *string
	Completed   *bool
}

type ViewInput struct {
	ActiveView     *string
	ActiveCategory *string
}

type ViewState struct {
	ActiveView     task.View  `json:"activeView"`
	ActiveCategory *uuid.UUID `json:"activeCategory"`
}

type TaskService struct {
	store Store
}

func NewTaskService(store Store) *TaskService {
	return &TaskService{
		store: store,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (uuid.UUID, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return uuid.Nil, NewValidationError("title", "название не может быть пустым")
	}

	priority, ok := task.ParsePriority(in.Priority)
	if !ok {
		return uuid.Nil, NewValidationError("priority", "ожидается low, medium или high")
	}

	options := []task.TaskOption{
		task.WithPriority(priority),
		task.WithDescription(strings.TrimSpace(in.Description)),
	}

	if in.DueDate != "" {
		due, err := parseDueDate(in.DueDate)
		if err != nil {
			return uuid.Nil, err
		}
		options = append(options, task.WithDueDate(&due))
	}

	if in.DueTime != "" {
		if err := validateDueTime(in.DueTime); err != nil {
			return uuid.Nil, err
		}
		options = append(options, task.WithDueTime(in.DueTime))
	}

	if in.Category != nil {
		if !s.categoryExists(*in.Category) {
			return uuid.Nil, NewNotFound("категория", in.Category.String())
		}
		options = append(options, task.WithCategory(in.Category))
	}

	if v := identity.FromContext(ctx); v.Authenticated {
		options = append(options, task.WithUserID(v.UserID))
	}

	id, err := s.store.AddTask(ctx, title, options...)
	if err != nil {
		return uuid.Nil, NewStorageError("add_task", err)
	}

	logger.Info("Service: Задача создана", zap.String("task_id", id.String()))
	return id, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, in UpdateTaskInput) error {
	options := []task.TaskOption{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return NewValidationError("title", "название не может быть пустым")
		}
		options = append(options, task.WithTitle(title))
	}

	if in.Priority != nil {
		priority, ok := task.ParsePriority(*in.Priority)
		if !ok {
			return NewValidationError("priority", "ожидается low, medium или high")
		}
		options = append(options, task.WithPriority(priority))
	}

	if in.DueDate != nil {
		if *in.DueDate == "" {
			options = append(options, task.WithDueDate(nil))
		} else {
			due, err := parseDueDate(*in.DueDate)
			if err != nil {
				return err
			}
			options = append(options, task.WithDueDate(&due))
		}
	}

	if in.DueTime != nil {
		if *in.DueTime != "" {
			if err := validateDueTime(*in.DueTime); err != nil {
				return err
			}
		}
		options = append(options, task.WithDueTime(*in.DueTime))
	}

	if in.Description != nil {
		options = append(options, task.WithDescription(strings.TrimSpace(*in.Description)))
	}

	if in.Category != nil {
		category, err := s.parseCategory(*in.Category)
		if err != nil {
			return err
		}
		options = append(options, task.WithCategory(category))
	}

	if in.Completed != nil {
		options = append(options, task.WithCompleted(*in.Completed))
	}

	if err := s.store.UpdateTask(ctx, id, options...); err != nil {
		return NewStorageError("update_task", err)
	}
	return nil
}

func (s *TaskService) RemoveTask(ctx context.Context, id uuid.UUID) error {
	if err := s.store.RemoveTask(ctx, id); err != nil {
		return NewStorageError("remove_task", err)
	}
	return nil
}

func (s *TaskService) ToggleTask(ctx context.Context, id uuid.UUID) error {
	if err := s.store.ToggleTaskCompletion(ctx, id); err != nil {
		return NewStorageError("toggle_task", err)
	}
	return nil
}

// VisibleTasks учитывает пользователя из контекста запроса.
func (s *TaskService) VisibleTasks(ctx context.Context) []task.Task {
	return s.store.VisibleTasks(identity.FromContext(ctx))
}

func (s *TaskService) AllTasks(ctx context.Context) []task.Task {
	return s.store.Tasks()
}

func (s *TaskService) TaskStats(ctx context.Context) store.Stats {
	return s.store.Stats()
}

func (s *TaskService) TasksDueOn(ctx context.Context, date string) ([]task.Task, error) {
	day, err := time.ParseInLocation(time.DateOnly, date, time.Local)
	if err != nil {
		return nil, NewValidationError("date", "ожидается YYYY-MM-DD")
	}
	return s.store.TasksDueOn(day), nil
}

func (s *TaskService) categoryExists(id uuid.UUID) bool {
	for _, c := range s.store.Categories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// parseCategory: пустая строка отвязывает категорию.
func (s *TaskService) parseCategory(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, NewValidationError("category", "ожидается UUID")
	}
	if !s.categoryExists(id) {
		return nil, NewNotFound("категория", raw)
	}
	return &id, nil
}

func parseDueDate(raw string) (time.Time, error) {
	if d, err := time.ParseInLocation(time.DateOnly, raw, time.Local); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return d, nil
	}
	return time.Time{}, NewValidationError("dueDate", "ожидается YYYY-MM-DD или RFC 3339")
}

func validateDueTime(raw string) error {
	if _, err := time.Parse("15:04", raw); err != nil || len(raw) != 5 {
		return NewValidationError("dueTime", "ожидается HH:MM")
	}
	return nil
}
