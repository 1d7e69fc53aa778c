package service

import (
	"context"
	"strings"

	"tlist/internal/logger"
	"tlist/internal/models/task"
	"tlist/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *TaskService) AddDailyTask(ctx context.Context, title string) (uuid.UUID, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return uuid.Nil, NewValidationError("title", "название не может быть пустым")
	}
	id, err := s.store.AddDailyTask(ctx, title)
	if err != nil {
		return uuid.Nil, NewStorageError("add_daily_task", err)
	}
	return id, nil
}

func (s *TaskService) RemoveDailyTask(ctx context.Context, id uuid.UUID) error {
	if err := s.store.RemoveDailyTask(ctx, id); err != nil {
		return NewStorageError("remove_daily_task", err)
	}
	return nil
}

func (s *TaskService) ToggleDailyTask(ctx context.Context, id uuid.UUID) error {
	if err := s.store.ToggleDailyTaskCompletion(ctx, id); err != nil {
		return NewStorageError("toggle_daily_task", err)
	}
	return nil
}

func (s *TaskService) ResetDailyTasks(ctx context.Context) error {
	if err := s.store.ResetDailyTasks(ctx); err != nil {
		return NewStorageError("reset_daily_tasks", err)
	}
	logger.Info("Service: Ежедневный список сброшен")
	return nil
}

func (s *TaskService) DailyTasks(ctx context.Context) []task.DailyTask {
	return s.store.DailyTasks()
}

func (s *TaskService) DailyStats(ctx context.Context) store.Stats {
	return s.store.DailyStats()
}

// AddCategory возвращает id сразу, интерфейс привязывает его к задаче в том же действии.
func (s *TaskService) AddCategory(ctx context.Context, name, color string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, NewValidationError("name", "название категории не может быть пустым")
	}
	id, err := s.store.AddCategory(ctx, name, strings.TrimSpace(color))
	if err != nil {
		return uuid.Nil, NewStorageError("add_category", err)
	}
	logger.Info("Service: Категория создана", zap.String("category_id", id.String()))
	return id, nil
}

func (s *TaskService) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.store.RemoveCategory(ctx, id); err != nil {
		return NewStorageError("remove_category", err)
	}
	return nil
}

func (s *TaskService) Categories(ctx context.Context) []task.Category {
	return s.store.Categories()
}

func (s *TaskService) View(ctx context.Context) ViewState {
	return ViewState{
		ActiveView:     s.store.ActiveView(),
		ActiveCategory: s.store.ActiveCategory(),
	}
}

// SetView меняет только переданные поля. Пустая категория снимает фильтр.
// Фильтр по несуществующей категории допустим: список просто будет пустым.
func (s *TaskService) SetView(ctx context.Context, in ViewInput) (ViewState, error) {
	if in.ActiveView != nil {
		view := task.View(*in.ActiveView)
		if !view.Valid() {
			return ViewState{}, NewValidationError("activeView", "ожидается all, active или completed")
		}
		if err := s.store.SetActiveView(ctx, view); err != nil {
			return ViewState{}, NewStorageError("set_active_view", err)
		}
	}

	if in.ActiveCategory != nil {
		var category *uuid.UUID
		if *in.ActiveCategory != "" {
			id, err := uuid.Parse(*in.ActiveCategory)
			if err != nil {
				return ViewState{}, NewValidationError("activeCategory", "ожидается UUID")
			}
			category = &id
		}
		if err := s.store.SetActiveCategory(ctx, category); err != nil {
			return ViewState{}, NewStorageError("set_active_category", err)
		}
	}

	return s.View(ctx), nil
}
