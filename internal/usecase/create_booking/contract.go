package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// LockBox блокирует бокс до конца текущей транзакции
	LockBox(ctx context.Context, boxID int64) error
}

// BoxRepository интерфейс репозитория боксов
type BoxRepository interface {
	GetBox(ctx context.Context, id int64) (*domain.Box, error)
}

// UserCarRepository интерфейс репозитория автомобилей пользователей
type UserCarRepository interface {
	GetUserCar(ctx context.Context, id int64) (*domain.UserCar, error)
}

// AvailabilityCalculator расчет свободных окон боксов на дату
type AvailabilityCalculator interface {
	ForDay(ctx context.Context, carWashID int64, date time.Time) (domain.Availability, error)
}

// PricingResolver интерфейс определения цен
type PricingResolver interface {
	Resolve(ctx context.Context, carWashID, configurationID int64) (*domain.Price, error)
	ResolveAdditions(ctx context.Context, carWashID int64, ids []int64) ([]domain.BookingAddition, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdmissionRecorder учет исходов проверки бронирований
type AdmissionRecorder interface {
	RecordAdmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
