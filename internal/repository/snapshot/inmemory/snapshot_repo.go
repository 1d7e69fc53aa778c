package inmemory

import (
	"context"
	"fmt"
	"sync"
	"tlist/internal/logger"
	"tlist/internal/models/task"
	repo "tlist/internal/repository"
)

// SnapshotStorage хранит сериализованные записи в памяти процесса.
// Запись проходит через тот же кодек, что и на диске, поэтому наружу отдаются копии.
type SnapshotStorage struct {
	storage map[string][]byte
	mtx     *sync.RWMutex
	key     string
	saves   int
}

func NewSnapshotStorage() *SnapshotStorage {
	return &SnapshotStorage{
		storage: make(map[string][]byte),
		mtx:     &sync.RWMutex{},
		key:     task.StorageKey,
	}
}

func (s *SnapshotStorage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Хранилище в памяти доступно")
	return nil
}

func (s *SnapshotStorage) Load(ctx context.Context) (*task.State, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	data, ok := s.storage[s.key]
	if !ok {
		return nil, repo.ErrNotFound
	}

	state, err := task.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrCorruptSnapshot, err)
	}
	return state, nil
}

func (s *SnapshotStorage) Save(ctx context.Context, state *task.State) error {
	data, err := task.Encode(state)
	if err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[s.key] = data
	s.saves++
	return nil
}

// Raw отдаёт сохранённую запись как есть.
func (s *SnapshotStorage) Raw() ([]byte, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	data, ok := s.storage[s.key]
	return data, ok
}

// Put кладёт запись без проверки, например снапшот из старой версии приложения.
func (s *SnapshotStorage) Put(data []byte) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[s.key] = data
}

func (s *SnapshotStorage) Saves() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return s.saves
}

func (s *SnapshotStorage) Close() error {
	return nil
}
