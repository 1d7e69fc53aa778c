package store

import (
	"context"
	"slices"

	"tlist/internal/models/task"

	"github.com/google/uuid"
)

func (s *Store) AddDailyTask(ctx context.Context, title string) (uuid.UUID, error) {
	id := s.newID()
	err := s.mutate(ctx, "add_daily_task", func(st *task.State) {
		st.DailyTasks = append(st.DailyTasks, task.DailyTask{
			ID:        id,
			Title:     title,
			Completed: false,
		})
	})
	return id, err
}

func (s *Store) RemoveDailyTask(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "remove_daily_task", func(st *task.State) {
		st.DailyTasks = slices.DeleteFunc(st.DailyTasks, func(t task.DailyTask) bool {
			return t.ID == id
		})
	})
}

func (s *Store) ToggleDailyTaskCompletion(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "toggle_daily_task", func(st *task.State) {
		for i := range st.DailyTasks {
			if st.DailyTasks[i].ID == id {
				st.DailyTasks[i].Completed = !st.DailyTasks[i].Completed
				return
			}
		}
	})
}

// ResetDailyTasks снимает отметки со всего чек-листа, ничего не удаляя. Новый день.
func (s *Store) ResetDailyTasks(ctx context.Context) error {
	return s.mutate(ctx, "reset_daily_tasks", func(st *task.State) {
		for i := range st.DailyTasks {
			st.DailyTasks[i].Completed = false
		}
	})
}
