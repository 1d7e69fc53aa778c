package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"tlist/internal/logger"
	"tlist/internal/models/task"
	repo "tlist/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshotter - порт долговременного хранения всего состояния одной записью.
type Snapshotter interface {
	Load(ctx context.Context) (*task.State, error)
	Save(ctx context.Context, state *task.State) error
	HealthCheck(ctx context.Context) error
}

// Recorder получает события для метрик.
type Recorder interface {
	Mutation(op string)
	SnapshotSaved(d time.Duration, err error)
	Totals(total, completed int)
}

type noopRecorder struct{}

func (noopRecorder) Mutation(string)                     {}
func (noopRecorder) SnapshotSaved(time.Duration, error) {}
func (noopRecorder) Totals(int, int)                     {}

// Store владеет задачами, ежедневными задачами, категориями и состоянием фильтров.
// Каждая операция выполняется целиком под блокировкой и сразу сохраняет снапшот.
type Store struct {
	mtx      sync.RWMutex
	state    *task.State
	snap     Snapshotter
	recorder Recorder
	now      func() time.Time
	newID    func() uuid.UUID
	color    func() string
}

type Option func(*Store)

func WithRecorder(r Recorder) Option {
	if r == nil {
		return nil
	}
	return func(s *Store) {
		s.recorder = r
	}
}

func WithClock(now func() time.Time) Option {
	if now == nil {
		return nil
	}
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() uuid.UUID) Option {
	if newID == nil {
		return nil
	}
	return func(s *Store) {
		s.newID = newID
	}
}

func WithColorGenerator(color func() string) Option {
	if color == nil {
		return nil
	}
	return func(s *Store) {
		s.color = color
	}
}

// Open восстанавливает состояние из снапшота. Отсутствие записи даёт пустое состояние.
func Open(ctx context.Context, snap Snapshotter, options ...Option) (*Store, error) {
	s := &Store{
		snap:     snap,
		recorder: noopRecorder{},
		now:      time.Now,
		newID:    uuid.New,
		color:    RandomColor,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	state, err := snap.Load(ctx)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		logger.Info("Store: Снапшот не найден, начинаем с пустого состояния")
		state = task.NewState()
	case err != nil:
		logger.Error("Store: Не удалось восстановить состояние", err)
		return nil, fmt.Errorf("восстановление состояния: %w", err)
	}

	s.state = state
	s.recorder.Totals(countTasks(state.Tasks))

	logger.Info("Store: Состояние восстановлено",
		zap.Int("tasks", len(state.Tasks)),
		zap.Int("daily_tasks", len(state.DailyTasks)),
		zap.Int("categories", len(state.Categories)))
	return s, nil
}

// RandomColor - случайный цвет вида #rrggbb.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.IntN(0x1000000))
}

func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.snap.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка хранилища: %w", err)
	}
	return nil
}

// mutate применяет изменение и сохраняет снапшот ровно один раз, без повторов.
// Ошибка сохранения возвращается вызывающему, в памяти изменение остаётся.
func (s *Store) mutate(ctx context.Context, op string, fn func(st *task.State)) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	fn(s.state)
	s.recorder.Mutation(op)
	s.recorder.Totals(countTasks(s.state.Tasks))

	start := time.Now()
	err := s.snap.Save(ctx, s.state)
	s.recorder.SnapshotSaved(time.Since(start), err)
	if err != nil {
		logger.Error("Store: Не удалось сохранить снапшот", err, zap.String("operation", op))
		return fmt.Errorf("сохранение состояния (%s): %w", op, err)
	}
	return nil
}

func countTasks(tasks []task.Task) (int, int) {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return len(tasks), completed
}
