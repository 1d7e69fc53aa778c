package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tlist/internal/logger"
	"tlist/internal/models/task"
	repo "tlist/internal/repository"

	"go.uber.org/zap"
)

// Storage держит снапшот в одном JSON-файле внутри каталога данных.
type Storage struct {
	mu   sync.Mutex
	path string
}

func New(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Error("Repository: Не удалось создать каталог данных", err, zap.String("dir", dataDir))
		return nil, fmt.Errorf("создание каталога данных: %w", err)
	}
	return &Storage{
		path: filepath.Join(dataDir, task.StorageKey+".json"),
	}, nil
}

func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("проверка каталога данных: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("проверка каталога данных: %s не каталог", dir)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context) (*task.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось прочитать снапшот", err, zap.String("path", s.path))
		return nil, fmt.Errorf("чтение снапшота: %w", err)
	}

	state, err := task.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrCorruptSnapshot, err)
	}
	return state, nil
}

// Save пишет во временный файл и переименовывает его, чтобы не оставить полузаписанный снапшот.
func (s *Storage) Save(ctx context.Context, state *task.State) error {
	start := time.Now()

	data, err := task.Encode(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("создание временного файла: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("запись снапшота: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("закрытие снапшота: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("замена снапшота: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная запись снапшота", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
