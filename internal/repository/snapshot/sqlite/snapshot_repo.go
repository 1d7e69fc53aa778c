package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tlist/internal/logger"
	"tlist/internal/models/task"
	repo "tlist/internal/repository"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Storage хранит снапшот в таблице ключ-значение SQLite.
// ":memory:" - база в памяти, иначе путь к файлу.
type Storage struct {
	db  *sql.DB
	key string
}

func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		logger.Error("Repository: Не удалось открыть SQLite", err, zap.String("path", dbPath))
		return nil, fmt.Errorf("открытие sqlite: %w", err)
	}
	// у ":memory:" своя база на каждое соединение
	db.SetMaxOpenConns(1)

	s := &Storage{db: db, key: task.StorageKey}
	if err := s.initialize(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("инициализация схемы: %w", err)
	}

	logger.Info("Repository: SQLite готов", zap.String("path", dbPath))
	return s, nil
}

func (s *Storage) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context) (*task.State, error) {
	start := time.Now()

	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось прочитать снапшот", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("чтение снапшота: %w", err)
	}

	state, err := task.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrCorruptSnapshot, err)
	}
	return state, nil
}

func (s *Storage) Save(ctx context.Context, state *task.State) error {
	start := time.Now()

	data, err := task.Encode(state)
	if err != nil {
		return err
	}

	query := `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, s.key, data, time.Now().Unix()); err != nil {
		logger.Error("Repository: Не удалось сохранить снапшот", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("сохранение снапшота: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная запись снапшота", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
