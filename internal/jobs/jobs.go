package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

const runTimeout = time.Minute

// BookingCompleter закрывает завершившиеся бронирования
type BookingCompleter interface {
	CompleteFinished(ctx context.Context, now time.Time) (*models.CompleteFinishedResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодические задачи сервиса на robfig/cron
type Scheduler struct {
	cron      *cron.Cron
	completer BookingCompleter
	logger    Logger
	now       func() time.Time
}

// NewScheduler регистрирует задачу закрытия бронирований по расписанию spec
// (стандартный cron или "@every 5m")
func NewScheduler(completer BookingCompleter, spec string, logger Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(cron.WithChain(cron.Recover(cronLogger{logger}))),
		completer: completer,
		logger:    logger,
		now:       time.Now,
	}

	if _, err := s.cron.AddFunc(spec, s.completeFinished); err != nil {
		return nil, fmt.Errorf("jobs: invalid schedule %q: %w", spec, err)
	}

	return s, nil
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.logger.Info("Jobs: scheduler started, entries=%d", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения запущенных задач
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Jobs: scheduler stopped")
	case <-ctx.Done():
		s.logger.Error("Jobs: scheduler stop timed out: %v", ctx.Err())
	}
}

// RunOnce выполняет задачу закрытия бронирований один раз
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	resp, err := s.completer.CompleteFinished(ctx, s.now())
	if err != nil {
		return 0, err
	}
	return resp.Completed, nil
}

func (s *Scheduler) completeFinished() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	completed, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Jobs: failed to complete finished bookings: %v", err)
		return
	}
	if completed > 0 {
		s.logger.Info("Jobs: completed %d finished bookings", completed)
	}
}

// cronLogger адаптер логгера сервиса к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info("Jobs: %s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("Jobs: %s: %v %v", msg, err, keysAndValues)
}
