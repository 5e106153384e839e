package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carWashRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/carwash"
	catalogRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CarWashService/internal/service/pricing"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
)

// UseCase use case для создания бронирования с проверкой свободного окна
type UseCase struct {
	bookingRepo   BookingRepository
	boxRepo       BoxRepository
	userCarRepo   UserCarRepository
	availability  AvailabilityCalculator
	pricing       PricingResolver
	txManager     TransactionManager
	recorder      AdmissionRecorder
	fixedDuration time.Duration
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// fixedDuration задает обязательную длительность бронирования, 0 = любая
func NewUseCase(
	bookingRepo BookingRepository,
	boxRepo BoxRepository,
	userCarRepo UserCarRepository,
	availability AvailabilityCalculator,
	pricing PricingResolver,
	txManager TransactionManager,
	recorder AdmissionRecorder,
	fixedDuration time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		boxRepo:       boxRepo,
		userCarRepo:   userCarRepo,
		availability:  availability,
		pricing:       pricing,
		txManager:     txManager,
		recorder:      recorder,
		fixedDuration: fixedDuration,
		logger:        logger,
	}
}

// IsBookingPossible true, если [start, end) целиком лежит в одном свободном окне бокса.
// Дата берется из start. Отсутствие расписания или бокса в результате = false
func (uc *UseCase) IsBookingPossible(ctx context.Context, box *domain.Box, start, end time.Time) (bool, error) {
	availability, err := uc.availability.ForDay(ctx, box.CarWashID, start)
	if err != nil {
		return false, err
	}

	if availability.IsEmpty() {
		return false, nil
	}

	return availability.Fits(box.ID, start, end), nil
}

// Execute выполняет use case создания бронирования.
// Проверка окна и вставка выполняются в одной сериализуемой транзакции
// под блокировкой бокса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, box=%d, car=%d, start=%s, end=%s",
		req.UserID, req.BoxID, req.UserCarID,
		req.StartDatetime.Format(domain.DateTimeFormat), req.EndDatetime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.fixedDuration); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Проверка и вставка в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бокс
		box, err := uc.boxRepo.GetBox(txCtx, req.BoxID)
		if err != nil {
			if errors.Is(err, carWashRepo.ErrBoxNotFound) {
				return ErrBoxNotFound
			}
			return fmt.Errorf("%w: failed to get box: %w", ErrInternal, err)
		}

		// 2.2. Конкурентные бронирования бокса ждут здесь до коммита
		if err := uc.bookingRepo.LockBox(txCtx, box.ID); err != nil {
			return fmt.Errorf("%w: failed to lock box: %w", ErrInternal, err)
		}

		// 2.3. Проверяем, что окно свободно
		possible, err := uc.IsBookingPossible(txCtx, box, req.StartDatetime, req.EndDatetime)
		if err != nil {
			return fmt.Errorf("%w: failed to compute availability: %w", ErrInternal, err)
		}
		if !possible {
			return ErrBookingNotAvailable
		}

		// 2.4. Автомобиль пользователя
		car, err := uc.userCarRepo.GetUserCar(txCtx, req.UserCarID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrUserCarNotFound) {
				return ErrUserCarNotFound
			}
			return fmt.Errorf("%w: failed to get user car: %w", ErrInternal, err)
		}
		if car.UserID != req.UserID {
			return ErrAccessDenied
		}

		// 2.5. Базовая цена по типу кузова
		price, err := uc.pricing.Resolve(txCtx, box.CarWashID, car.ConfigurationID)
		if err != nil {
			switch {
			case errors.Is(err, pricing.ErrPriceNotFound):
				return fmt.Errorf("%w: %v", ErrPriceNotFound, err)
			case errors.Is(err, pricing.ErrConfigurationNotFound):
				return ErrConfigurationNotFound
			default:
				return fmt.Errorf("%w: failed to resolve price: %w", ErrInternal, err)
			}
		}

		// 2.6. Дополнительные услуги
		additions, err := uc.pricing.ResolveAdditions(txCtx, box.CarWashID, req.AdditionIDs)
		if err != nil {
			if errors.Is(err, pricing.ErrAdditionNotFound) {
				return fmt.Errorf("%w: %v", ErrAdditionNotFound, err)
			}
			return fmt.Errorf("%w: failed to resolve additions: %w", ErrInternal, err)
		}

		// 2.7. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			BoxID:         box.ID,
			UserCarID:     car.ID,
			UserID:        req.UserID,
			StartDatetime: req.StartDatetime,
			EndDatetime:   req.EndDatetime,
			IsException:   false,
			State:         domain.StateCreated,
			BasePrice:     price.Price,
			TotalPrice:    pricing.Total(price.Price, additions),
			Additions:     additions,
			Notes:         req.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.logOutcome(req, err)
		return nil, err
	}

	uc.recorder.RecordAdmission(metrics.OutcomeAdmitted)
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return fromDomain(result), nil
}

func (uc *UseCase) logOutcome(req *Request, err error) {
	switch {
	case errors.Is(err, ErrBookingNotAvailable):
		uc.recorder.RecordAdmission(metrics.OutcomeNotAvailable)
		uc.logger.Warn("CreateBooking: box=%d window %s - %s is not available",
			req.BoxID, req.StartDatetime.Format(domain.DateTimeFormat), req.EndDatetime.Format(domain.DateTimeFormat))
	case errors.Is(err, ErrPriceNotFound):
		uc.recorder.RecordAdmission(metrics.OutcomePriceMissing)
		uc.logger.Error("CreateBooking: box=%d: %v", req.BoxID, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: box=%d: %v", req.BoxID, err)
	default:
		uc.logger.Warn("CreateBooking: box=%d rejected: %v", req.BoxID, err)
	}
}
