package inmemory_test

import (
	"context"
	"testing"

	"tlist/internal/repository"
	"tlist/internal/repository/snapshot/inmemory"
	"tlist/internal/repository/snapshot/snapshottest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSnapshotStorage_New тестирует создание хранилища
func TestSnapshotStorage_New(t *testing.T) {
	storage := inmemory.NewSnapshotStorage()
	assert.NotNil(t, storage)
	assert.Equal(t, 0, storage.Saves())
}

func TestSnapshotStorage_Contract(t *testing.T) {
	snapshottest.Run(t, inmemory.NewSnapshotStorage())
}

// TestSnapshotStorage_Isolation проверяет, что сохранённая запись не зависит от исходного объекта
func TestSnapshotStorage_Isolation(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewSnapshotStorage()

	state := snapshottest.SampleState()
	require.NoError(t, storage.Save(ctx, state))
	state.Tasks[0].Title = "changed after save"

	got, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "report", got.Tasks[0].Title)
	assert.Equal(t, 1, storage.Saves())
}

// TestSnapshotStorage_Corrupt тестирует повреждённую запись
func TestSnapshotStorage_Corrupt(t *testing.T) {
	storage := inmemory.NewSnapshotStorage()
	storage.Put([]byte(`{"state": [`))

	_, err := storage.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrCorruptSnapshot)
}

// TestSnapshotStorage_LegacyRecord читает запись, где даты хранятся строками в разных форматах
func TestSnapshotStorage_LegacyRecord(t *testing.T) {
	storage := inmemory.NewSnapshotStorage()
	storage.Put([]byte(`{"state":{
		"tasks":[{"id":"0b6f6b4e-5d55-4d0e-9a8e-2b1f2f0f7c11","title":"old","completed":true,
			"createdAt":"2024-01-02T10:00:00.000Z","dueDate":"garbage","priority":"low"}],
		"dailyTasks":[{"id":"5a0c0b1e-9f0e-4a4b-8c7e-3d2e1f0a9b88","title":"walk","completed":false}],
		"categories":[],
		"activeView":"completed",
		"activeCategory":null},"version":0}`))

	got, err := storage.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Nil(t, got.Tasks[0].DueDate)
	assert.False(t, got.Tasks[0].CreatedAt.IsZero())
	assert.Len(t, got.DailyTasks, 1)
	assert.Equal(t, "completed", string(got.ActiveView))

	raw, ok := storage.Raw()
	assert.True(t, ok)
	assert.Contains(t, string(raw), "garbage")
}
