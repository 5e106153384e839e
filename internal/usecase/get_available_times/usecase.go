package get_available_times

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carWashRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/carwash"
)

// UseCase use case расчета свободного времени боксов автомойки
type UseCase struct {
	dayRowsRepo DayRowsRepository
	carWashRepo CarWashRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(dayRowsRepo DayRowsRepository, carWashRepo CarWashRepository, logger Logger) *UseCase {
	return &UseCase{
		dayRowsRepo: dayRowsRepo,
		carWashRepo: carWashRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободного времени на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: car_wash=%d, date=%s", req.CarWashID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование автомойки
	if _, err := uc.carWashRepo.GetCarWash(ctx, req.CarWashID); err != nil {
		if errors.Is(err, carWashRepo.ErrCarWashNotFound) {
			uc.logger.Warn("GetAvailableTimes: car wash id=%d not found", req.CarWashID)
			return nil, ErrCarWashNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get car wash id=%d: %v", req.CarWashID, err)
		return nil, fmt.Errorf("%w: failed to get car wash: %v", ErrInternal, err)
	}

	// 3. Считаем окна
	date := truncateDate(req.Date)
	availability, err := uc.ForDay(ctx, req.CarWashID, date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: car_wash=%d, date=%s: %v", req.CarWashID, date.Format(domain.DateFormat), err)
		return nil, err
	}

	uc.logger.Info("GetAvailableTimes: computed windows for %d boxes, car_wash=%d, date=%s",
		len(availability.BoxIDs()), req.CarWashID, date.Format(domain.DateFormat))

	return &Response{
		CarWashID:    req.CarWashID,
		Date:         date,
		Availability: availability,
	}, nil
}

// ForDay считает свободные окна без проверки автомойки и без логирования.
// Каждый вызов читает текущее состояние хранилища, результат не кешируется
func (uc *UseCase) ForDay(ctx context.Context, carWashID int64, date time.Time) (domain.Availability, error) {
	date = truncateDate(date)

	rows, err := uc.dayRowsRepo.GetDayRows(ctx, carWashID, date)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("%w: failed to get day rows: %w", ErrInternal, err)
	}

	return Calculate(date, rows)
}

// truncateDate отбрасывает время суток, сохраняя локацию
func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
