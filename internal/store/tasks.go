package store

import (
	"context"
	"slices"

	"tlist/internal/models/task"

	"github.com/google/uuid"
)

// AddTask добавляет задачу с новым id, completed=false и CreatedAt=сейчас.
// Заголовок не проверяется: пустые и пробельные названия отсекает вызывающий.
func (s *Store) AddTask(ctx context.Context, title string, options ...task.TaskOption) (uuid.UUID, error) {
	id := s.newID()
	err := s.mutate(ctx, "add_task", func(st *task.State) {
		t := task.Task{
			Title:    title,
			Priority: task.PriorityMedium,
		}
		t.Apply(options...)
		t.ID = id
		t.Completed = false
		t.CreatedAt = s.now()
		st.Tasks = append(st.Tasks, t)
	})
	return id, err
}

// UpdateTask сливает поля в задачу с указанным id. Неизвестный id - ничего не делает.
// ID и CreatedAt не меняются, даже если опция попытается.
func (s *Store) UpdateTask(ctx context.Context, id uuid.UUID, options ...task.TaskOption) error {
	return s.mutate(ctx, "update_task", func(st *task.State) {
		i := indexOfTask(st.Tasks, id)
		if i < 0 {
			return
		}
		t := st.Tasks[i].Clone()
		t.Apply(options...)
		t.ID = st.Tasks[i].ID
		t.CreatedAt = st.Tasks[i].CreatedAt
		st.Tasks[i] = t
	})
}

func (s *Store) RemoveTask(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "remove_task", func(st *task.State) {
		st.Tasks = slices.DeleteFunc(st.Tasks, func(t task.Task) bool {
			return t.ID == id
		})
	})
}

func (s *Store) ToggleTaskCompletion(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "toggle_task", func(st *task.State) {
		if i := indexOfTask(st.Tasks, id); i >= 0 {
			st.Tasks[i].Completed = !st.Tasks[i].Completed
		}
	})
}

func indexOfTask(tasks []task.Task, id uuid.UUID) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool {
		return t.ID == id
	})
}
