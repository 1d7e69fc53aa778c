package task_test

import (
	"testing"
	"time"

	"tlist/internal/models/task"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	cat := uuid.New()
	created := time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)
	state := task.NewState()
	state.Tasks = append(state.Tasks, task.Task{
		ID:          uuid.New(),
		Title:       "report",
		CreatedAt:   created,
		DueDate:     day(2024, 2, 10),
		DueTime:     "09:00",
		Priority:    task.PriorityHigh,
		Description: "q1",
		Category:    &cat,
	})
	state.DailyTasks = append(state.DailyTasks, task.DailyTask{ID: uuid.New(), Title: "run", Completed: true})
	state.Categories = append(state.Categories, task.Category{ID: cat, Name: "Work", Color: "#00ff00"})
	state.ActiveView = task.ViewCompleted
	state.ActiveCategory = &cat

	data, err := task.Encode(state)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":0`)

	got, err := task.Decode(data)
	require.NoError(t, err)

	require.Len(t, got.Tasks, 1)
	tk := got.Tasks[0]
	assert.Equal(t, state.Tasks[0].ID, tk.ID)
	assert.True(t, created.Equal(tk.CreatedAt))
	require.NotNil(t, tk.DueDate)
	assert.True(t, task.SameDay(*state.Tasks[0].DueDate, *tk.DueDate))
	assert.Equal(t, cat, *tk.Category)
	assert.Equal(t, state.DailyTasks, got.DailyTasks)
	assert.Equal(t, state.Categories, got.Categories)
	assert.Equal(t, task.ViewCompleted, got.ActiveView)
	assert.Equal(t, cat, *got.ActiveCategory)
}

func TestDecode_LenientDates(t *testing.T) {
	id := uuid.New()
	raw := `{"state":{"tasks":[
		{"id":"` + id.String() + `","title":"t","completed":false,
		 "createdAt":"not a date","dueDate":"2024-02-31T99:00:00Z","priority":"high"}
	]},"version":0}`

	got, err := task.Decode([]byte(raw))
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.True(t, got.Tasks[0].CreatedAt.IsZero())
	assert.Nil(t, got.Tasks[0].DueDate)
	assert.Equal(t, task.PriorityHigh, got.Tasks[0].Priority)
}

func TestDecode_DateFormats(t *testing.T) {
	tests := []struct {
		name string
		due  string
		want time.Time
	}{
		{"iso with millis", `"2024-02-10T00:00:00.000Z"`, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", `"2024-02-10T08:00:00+03:00"`, time.Date(2024, 2, 10, 5, 0, 0, 0, time.UTC)},
		{"date only", `"2024-02-10"`, time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local)},
		{"unix millis", `1707523200000`, time.UnixMilli(1707523200000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"state":{"tasks":[{"id":"` + uuid.NewString() + `","title":"t","dueDate":` + tt.due + `}]}}`
			got, err := task.Decode([]byte(raw))
			require.NoError(t, err)
			require.NotNil(t, got.Tasks[0].DueDate)
			assert.True(t, tt.want.Equal(*got.Tasks[0].DueDate))
		})
	}
}

func TestDecode_Defaults(t *testing.T) {
	raw := `{"state":{"tasks":[{"id":"` + uuid.NewString() + `","title":"t","priority":"urgent","category":"bogus"}],
		"activeView":"weird","activeCategory":""},"version":0}`

	got, err := task.Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, task.PriorityMedium, got.Tasks[0].Priority)
	assert.Nil(t, got.Tasks[0].Category)
	assert.Equal(t, task.ViewAll, got.ActiveView)
	assert.Nil(t, got.ActiveCategory)
	assert.NotNil(t, got.DailyTasks)
	assert.NotNil(t, got.Categories)
}

func TestDecode_Empty(t *testing.T) {
	for _, raw := range []string{"", "  ", `{"version":0}`} {
		got, err := task.Decode([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, task.NewState(), got)
	}
}

func TestDecode_Broken(t *testing.T) {
	_, err := task.Decode([]byte(`{"state":`))
	assert.Error(t, err)
}
