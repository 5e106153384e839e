package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, state *domain.BookingState) ([]*domain.Booking, error)
	GetByCarWashWithFilter(ctx context.Context, filter domain.CarWashBookingsFilter) ([]*domain.Booking, error)
	UpdateState(ctx context.Context, id int64, from, to domain.BookingState) error
	SetException(ctx context.Context, id int64, isException bool) error
	CompleteFinished(ctx context.Context, before time.Time) (int64, error)
	LockBox(ctx context.Context, boxID int64) error
}

// BoxRepository интерфейс репозитория боксов
type BoxRepository interface {
	GetBox(ctx context.Context, id int64) (*domain.Box, error)
}

// AdmissionChecker проверка, что окно бокса свободно
type AdmissionChecker interface {
	IsBookingPossible(ctx context.Context, box *domain.Box, start, end time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
