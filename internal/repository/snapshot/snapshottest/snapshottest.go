// Package snapshottest проверяет, что реализация хранилища снапшотов ведёт себя одинаково.
package snapshottest

import (
	"context"
	"testing"
	"time"

	"tlist/internal/models/task"
	repo "tlist/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Snapshotter interface {
	Load(ctx context.Context) (*task.State, error)
	Save(ctx context.Context, state *task.State) error
	HealthCheck(ctx context.Context) error
}

// SampleState - состояние со всеми видами сущностей и полей.
func SampleState() *task.State {
	cat := uuid.New()
	due := time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)
	st := task.NewState()
	st.Tasks = []task.Task{
		{
			ID:          uuid.New(),
			Title:       "report",
			CreatedAt:   time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC),
			DueDate:     &due,
			DueTime:     "09:00",
			Priority:    task.PriorityHigh,
			Description: "q1 numbers",
			Category:    &cat,
			UserID:      "user-1",
		},
		{
			ID:        uuid.New(),
			Title:     "legacy shared",
			Completed: true,
			CreatedAt: time.Date(2023, 12, 1, 8, 0, 0, 0, time.UTC),
			Priority:  task.PriorityLow,
			GroupID:   "family",
		},
	}
	st.DailyTasks = []task.DailyTask{
		{ID: uuid.New(), Title: "stretch", Completed: true},
		{ID: uuid.New(), Title: "read"},
	}
	st.Categories = []task.Category{{ID: cat, Name: "Work", Color: "#aabbcc"}}
	st.ActiveView = task.ViewActive
	st.ActiveCategory = &cat
	return st
}

// RequireEquivalent сравнивает состояния, даты - по моменту времени.
func RequireEquivalent(t *testing.T, want, got *task.State) {
	t.Helper()

	require.Len(t, got.Tasks, len(want.Tasks))
	for i := range want.Tasks {
		w, g := want.Tasks[i], got.Tasks[i]
		assert.Equal(t, w.ID, g.ID)
		assert.Equal(t, w.Title, g.Title)
		assert.Equal(t, w.Completed, g.Completed)
		assert.True(t, w.CreatedAt.Equal(g.CreatedAt), "createdAt %s != %s", w.CreatedAt, g.CreatedAt)
		if w.DueDate == nil {
			assert.Nil(t, g.DueDate)
		} else if assert.NotNil(t, g.DueDate) {
			assert.True(t, w.DueDate.Equal(*g.DueDate))
		}
		assert.Equal(t, w.DueTime, g.DueTime)
		assert.Equal(t, w.Priority, g.Priority)
		assert.Equal(t, w.Description, g.Description)
		assert.Equal(t, w.Category, g.Category)
		assert.Equal(t, w.UserID, g.UserID)
		assert.Equal(t, w.GroupID, g.GroupID)
	}
	assert.Equal(t, want.DailyTasks, got.DailyTasks)
	assert.Equal(t, want.Categories, got.Categories)
	assert.Equal(t, want.ActiveView, got.ActiveView)
	assert.Equal(t, want.ActiveCategory, got.ActiveCategory)
}

// Run прогоняет общий набор проверок. Хранилище должно быть пустым.
func Run(t *testing.T, s Snapshotter) {
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, s.HealthCheck(ctx))
	})

	t.Run("load missing", func(t *testing.T) {
		_, err := s.Load(ctx)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		want := SampleState()
		require.NoError(t, s.Save(ctx, want))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		RequireEquivalent(t, want, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		first := SampleState()
		require.NoError(t, s.Save(ctx, first))

		second := task.NewState()
		second.DailyTasks = []task.DailyTask{{ID: uuid.New(), Title: "only"}}
		require.NoError(t, s.Save(ctx, second))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		RequireEquivalent(t, second, got)
	})

	t.Run("empty state", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, task.NewState()))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.Tasks)
		assert.Empty(t, got.DailyTasks)
		assert.Empty(t, got.Categories)
		assert.Equal(t, task.ViewAll, got.ActiveView)
		assert.Nil(t, got.ActiveCategory)
	})
}
