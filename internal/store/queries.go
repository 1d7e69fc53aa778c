package store

import (
	"math"
	"time"

	"tlist/internal/identity"
	"tlist/internal/models/task"

	"github.com/google/uuid"
)

type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// NewStats считает процент выполненных с округлением, для пустого набора 0.
func NewStats(total, completed int) Stats {
	st := Stats{Total: total, Completed: completed}
	if total > 0 {
		st.Percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return st
}

// Snapshot - глубокая копия всего состояния.
func (s *Store) Snapshot() *task.State {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.state.Clone()
}

func (s *Store) Tasks() []task.Task {
	return s.Snapshot().Tasks
}

func (s *Store) DailyTasks() []task.DailyTask {
	return s.Snapshot().DailyTasks
}

func (s *Store) Categories() []task.Category {
	return s.Snapshot().Categories
}

func (s *Store) ActiveView() task.View {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.state.ActiveView
}

func (s *Store) ActiveCategory() *uuid.UUID {
	return s.Snapshot().ActiveCategory
}

// VisibleTasks - список для отображения, считается заново при каждом вызове.
func (s *Store) VisibleTasks(viewer identity.Viewer) []task.Task {
	st := s.Snapshot()
	return FilterTasks(st.Tasks, viewer, st.ActiveView, st.ActiveCategory)
}

// FilterTasks применяет фильтры по пользователю, виду и категории и сортирует результат.
// Вошедший пользователь видит только личные задачи, без GroupID.
func FilterTasks(tasks []task.Task, viewer identity.Viewer, view task.View, category *uuid.UUID) []task.Task {
	res := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if viewer.Authenticated && t.GroupID != "" {
			continue
		}

		switch view {
		case task.ViewActive:
			if t.Completed {
				continue
			}
		case task.ViewCompleted:
			if !t.Completed {
				continue
			}
		}

		if category != nil && (t.Category == nil || *t.Category != *category) {
			continue
		}

		res = append(res, t)
	}

	task.Sort(res)
	return res
}

// Stats по всей коллекции задач, без учёта фильтров.
func (s *Store) Stats() Stats {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return NewStats(countTasks(s.state.Tasks))
}

func (s *Store) DailyStats() Stats {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	completed := 0
	for _, t := range s.state.DailyTasks {
		if t.Completed {
			completed++
		}
	}
	return NewStats(len(s.state.DailyTasks), completed)
}

// TasksDueOn возвращает задачи, у которых срок приходится на тот же календарный день.
func (s *Store) TasksDueOn(day time.Time) []task.Task {
	res := []task.Task{}
	for _, t := range s.Tasks() {
		if t.DueDate != nil && task.SameDay(*t.DueDate, day) {
			res = append(res, t)
		}
	}
	return res
}
