package schedules

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Upsert(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetByCarWash(ctx context.Context, carWashID int64) ([]*domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
}

// CarWashRepository интерфейс репозитория автомоек
type CarWashRepository interface {
	GetCarWash(ctx context.Context, id int64) (*domain.CarWash, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
