package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"

	"tlist/internal/config"
	"tlist/internal/handlers"
	"tlist/internal/logger"
	"tlist/internal/metrics"
	"tlist/internal/middleware"
	"tlist/internal/repository/snapshot/file"
	"tlist/internal/repository/snapshot/inmemory"
	"tlist/internal/repository/snapshot/postgres"
	"tlist/internal/repository/snapshot/sqlite"
	"tlist/internal/service"
	"tlist/internal/store"
	"tlist/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type snapshotStorage interface {
	store.Snapshotter
	Close() error
}

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	storage   snapshotStorage
	store     *store.Store
	service   *service.TaskService
	metrics   *metrics.Recorder
	worker    *worker.DailyResetWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init поднимает логгер, хранилище, store и сервис. HTTP и воркер создаёт Run.
func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	storage, err := a.initStorage(ctx)
	if err != nil {
		return fmt.Errorf("инициализация хранилища: %w", err)
	}
	a.storage = storage
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Закрытие хранилища...")
		if err := storage.Close(); err != nil {
			logger.Error("Ошибка закрытия хранилища", err)
		}
	})

	a.metrics = metrics.NewRecorder(nil)

	st, err := store.Open(ctx, storage, store.WithRecorder(a.metrics))
	if err != nil {
		return fmt.Errorf("открытие store: %w", err)
	}
	a.store = st
	a.service = service.NewTaskService(st)

	logger.Info("Приложение инициализировано", zap.String("storage", a.config.Storage.Type))
	return nil
}

func (a *App) initStorage(ctx context.Context) (snapshotStorage, error) {
	cfg := a.config.Storage

	switch cfg.Type {
	case config.StorageInMemory:
		return inmemory.NewSnapshotStorage(), nil

	case config.StorageFile:
		return file.New(cfg.DataDir)

	case config.StorageSQLite:
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("создание каталога для sqlite: %w", err)
			}
		}
		return sqlite.New(ctx, cfg.SQLitePath)

	case config.StoragePostgres:
		pg, err := postgres.New(ctx, cfg.PostgresURL, postgres.Options{
			MaxConns:    int32(cfg.MaxConnections),
			MinConns:    int32(cfg.MinConnections),
			IdleTimeout: cfg.IdleTimeout,
		})
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, err
		}
		return pg, nil

	default:
		return nil, fmt.Errorf("неизвестный тип хранилища %q", cfg.Type)
	}
}

func (a *App) initRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.HTTP.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", middleware.UserIDHeader},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(a.config.HTTP.RateLimitRPM))
	r.Use(middleware.Timeout(a.config.HTTP.Timeout))
	r.Use(middleware.Identity)

	handlers.NewTaskHandler(a.service).Routes(r)
	r.Handle("/metrics", a.metrics.Handler())

	a.router = r
}

func (a *App) initWorker(ctx context.Context) error {
	if !a.config.Scheduler.DailyResetEnabled {
		return nil
	}

	hour, minute, err := a.config.Scheduler.ResetClock()
	if err != nil {
		return err
	}

	w, err := worker.NewDailyResetWorker(a.service, hour, minute)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}

	a.worker = w
	a.shutdowns = append(a.shutdowns, func() {
		if err := w.Stop(); err != nil {
			logger.Error("Ошибка остановки воркера", err)
		}
	})
	return nil
}

// Run обслуживает HTTP до отмены ctx, затем корректно завершает сервер.
func (a *App) Run(ctx context.Context) error {
	a.initRouter()
	if err := a.initWorker(ctx); err != nil {
		return fmt.Errorf("запуск воркера: %w", err)
	}

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http сервер: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("остановка http сервера: %w", err)
	}
	return nil
}

// Shutdown освобождает ресурсы в обратном порядке.
func (a *App) Shutdown() {
	for _, fn := range slices.Backward(a.shutdowns) {
		fn()
	}
	a.shutdowns = nil
}

func (a *App) Service() *service.TaskService {
	return a.service
}

func (a *App) Router() http.Handler {
	if a.router == nil {
		a.initRouter()
	}
	return a.router
}
