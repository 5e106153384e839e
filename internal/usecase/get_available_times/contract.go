package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// DayRowsRepository источник расписаний и бронирований боксов на дату
type DayRowsRepository interface {
	// GetDayRows одним запросом получает расписание каждого бокса автомойки
	// и пересекающиеся с датой блокирующие бронирования
	GetDayRows(ctx context.Context, carWashID int64, date time.Time) ([]domain.DayRow, error)
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
