package task_test

import (
	"testing"
	"time"

	"tlist/internal/models/task"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &v
}

func titles(tasks []task.Task) []string {
	res := make([]string, len(tasks))
	for i, t := range tasks {
		res[i] = t.Title
	}
	return res
}

func TestSort(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		tasks []task.Task
		want  []string
	}{
		{
			name: "incomplete, priority, due date, then newest",
			tasks: []task.Task{
				{Title: "A", Priority: task.PriorityHigh, DueDate: day(2024, 2, 10), CreatedAt: base},
				{Title: "B", Priority: task.PriorityHigh, DueDate: day(2024, 2, 5), CreatedAt: base.Add(time.Minute)},
				{Title: "C", Priority: task.PriorityHigh, DueDate: day(2024, 1, 1), Completed: true, CreatedAt: base.Add(2 * time.Minute)},
				{Title: "D", Priority: task.PriorityLow, CreatedAt: base.Add(time.Hour)},
			},
			want: []string{"B", "A", "D", "C"},
		},
		{
			name: "priority order",
			tasks: []task.Task{
				{Title: "low", Priority: task.PriorityLow, CreatedAt: base},
				{Title: "medium", Priority: task.PriorityMedium, CreatedAt: base},
				{Title: "high", Priority: task.PriorityHigh, CreatedAt: base},
			},
			want: []string{"high", "medium", "low"},
		},
		{
			name: "missing due date falls through to created at",
			tasks: []task.Task{
				{Title: "old with date", Priority: task.PriorityMedium, DueDate: day(2024, 1, 2), CreatedAt: base},
				{Title: "new without date", Priority: task.PriorityMedium, CreatedAt: base.Add(time.Hour)},
			},
			want: []string{"new without date", "old with date"},
		},
		{
			name: "equal due dates fall through to created at",
			tasks: []task.Task{
				{Title: "older", Priority: task.PriorityMedium, DueDate: day(2024, 3, 3), CreatedAt: base},
				{Title: "newer", Priority: task.PriorityMedium, DueDate: day(2024, 3, 3), CreatedAt: base.Add(time.Second)},
			},
			want: []string{"newer", "older"},
		},
		{
			name: "completed sorted among themselves",
			tasks: []task.Task{
				{Title: "done low", Priority: task.PriorityLow, Completed: true, CreatedAt: base},
				{Title: "done high", Priority: task.PriorityHigh, Completed: true, CreatedAt: base},
				{Title: "open low", Priority: task.PriorityLow, CreatedAt: base},
			},
			want: []string{"open low", "done high", "done low"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task.Sort(tt.tasks)
			assert.Equal(t, tt.want, titles(tt.tasks))
		})
	}
}

func TestLess(t *testing.T) {
	a := task.Task{ID: uuid.New(), Priority: task.PriorityHigh}
	b := task.Task{ID: uuid.New(), Priority: task.PriorityLow}

	assert.True(t, task.Less(a, b))
	assert.False(t, task.Less(b, a))
	assert.False(t, task.Less(a, a))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 2, 10, 0, 1, 0, 0, time.Local)
	b := time.Date(2024, 2, 10, 23, 59, 0, 0, time.Local)
	c := time.Date(2024, 2, 11, 0, 0, 0, 0, time.Local)

	assert.True(t, task.SameDay(a, b))
	assert.False(t, task.SameDay(b, c))
}

func TestPriority(t *testing.T) {
	p, ok := task.ParsePriority("")
	assert.True(t, ok)
	assert.Equal(t, task.PriorityMedium, p)

	p, ok = task.ParsePriority("high")
	assert.True(t, ok)
	assert.Equal(t, task.PriorityHigh, p)

	_, ok = task.ParsePriority("urgent")
	assert.False(t, ok)
}
