package worker

import (
	"context"
	"fmt"
	"time"

	"tlist/internal/logger"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

type DailyResetter interface {
	ResetDailyTasks(ctx context.Context) error
}

// DailyResetWorker раз в сутки снимает отметки с ежедневного списка.
type DailyResetWorker struct {
	resetter  DailyResetter
	hour      uint
	minute    uint
	timeout   time.Duration
	scheduler gocron.Scheduler
	job       gocron.Job
}

func NewDailyResetWorker(resetter DailyResetter, hour, minute uint) (*DailyResetWorker, error) {
	if hour > 23 || minute > 59 {
		return nil, fmt.Errorf("неверное время сброса %02d:%02d", hour, minute)
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, fmt.Errorf("создание планировщика: %w", err)
	}

	return &DailyResetWorker{
		resetter:  resetter,
		hour:      hour,
		minute:    minute,
		timeout:   30 * time.Second,
		scheduler: s,
	}, nil
}

// Start регистрирует задание и запускает планировщик. Не блокирует.
func (w *DailyResetWorker) Start(ctx context.Context) error {
	job, err := w.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(w.hour, w.minute, 0))),
		gocron.NewTask(func() {
			w.Reset(ctx)
		}),
		gocron.WithName("daily-reset"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("создание задания сброса: %w", err)
	}
	w.job = job

	w.scheduler.Start()
	logger.Info("Worker: Ежедневный сброс запланирован",
		zap.String("at", fmt.Sprintf("%02d:%02d", w.hour, w.minute)))
	return nil
}

// NextRun - время ближайшего сброса, до Start нулевое.
func (w *DailyResetWorker) NextRun() (time.Time, error) {
	if w.job == nil {
		return time.Time{}, nil
	}
	return w.job.NextRun()
}

func (w *DailyResetWorker) Stop() error {
	logger.Info("Worker: Ежедневный сброс останавливается")
	return w.scheduler.Shutdown()
}

// Reset выполняет один сброс, ошибки только логируются.
func (w *DailyResetWorker) Reset(ctx context.Context) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.resetter.ResetDailyTasks(ctx); err != nil {
		logger.Warn("Worker: Ошибка сброса ежедневного списка", zap.Error(err))
		return
	}

	logger.Info("Worker: Ежедневный список сброшен", zap.Duration("ms", time.Since(start)))
}
