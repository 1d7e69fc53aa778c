package store

import (
	"context"
	"slices"

	"tlist/internal/models/task"

	"github.com/google/uuid"
)

// AddCategory сразу возвращает id, чтобы его можно было привязать к задаче в том же действии.
// Пустой color заменяется случайным.
func (s *Store) AddCategory(ctx context.Context, name, color string) (uuid.UUID, error) {
	id := s.newID()
	if color == "" {
		color = s.color()
	}
	err := s.mutate(ctx, "add_category", func(st *task.State) {
		st.Categories = append(st.Categories, task.Category{
			ID:    id,
			Name:  name,
			Color: color,
		})
	})
	return id, err
}

// RemoveCategory удаляет категорию, отвязывает её от всех задач
// и сбрасывает активный фильтр, если он указывал на неё.
func (s *Store) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "remove_category", func(st *task.State) {
		st.Categories = slices.DeleteFunc(st.Categories, func(c task.Category) bool {
			return c.ID == id
		})
		for i := range st.Tasks {
			if st.Tasks[i].Category != nil && *st.Tasks[i].Category == id {
				st.Tasks[i].Category = nil
			}
		}
		if st.ActiveCategory != nil && *st.ActiveCategory == id {
			st.ActiveCategory = nil
		}
	})
}

func (s *Store) SetActiveView(ctx context.Context, view task.View) error {
	return s.mutate(ctx, "set_active_view", func(st *task.State) {
		st.ActiveView = view
	})
}

// SetActiveCategory с nil снимает фильтр по категории.
func (s *Store) SetActiveCategory(ctx context.Context, categoryID *uuid.UUID) error {
	var id *uuid.UUID
	if categoryID != nil {
		v := *categoryID
		id = &v
	}
	return s.mutate(ctx, "set_active_category", func(st *task.State) {
		st.ActiveCategory = id
	})
}
