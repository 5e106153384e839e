package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	carWashRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/carwash"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	boxRepo     BoxRepository
	admission   AdmissionChecker
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	boxRepo BoxRepository,
	admission AdmissionChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		boxRepo:     boxRepo,
		admission:   admission,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно владельцу, оператору бокса и администратору
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != actor.UserID {
		if _, err := s.checkOperatorAccess(ctx, actor, booking.BoxID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
			return nil, err
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя, опционально по состоянию
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, state=%v", req.UserID, req.State)

	var state *domain.BookingState
	if req.State != nil {
		parsed, err := domain.ParseBookingState(*req.State)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid state=%s for user=%d", *req.State, req.UserID)
			return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
		}
		state = &parsed
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, state)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCarWashBookings получает бронирования автомойки с фильтрацией.
// Администратор видит всю автомойку, оператор только свой бокс
func (s *Service) GetCarWashBookings(ctx context.Context, actor domain.Actor, req *models.GetCarWashBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetCarWashBookings: fetching bookings for car_wash=%d, user=%d", req.CarWashID, actor.UserID)
	if req.BoxID != nil {
		logMsg += fmt.Sprintf(", box=%d", *req.BoxID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.State != nil {
		logMsg += fmt.Sprintf(", state=%s", *req.State)
	}
	if req.IncludeExceptions {
		logMsg += ", includeExceptions=true"
	}
	s.logger.Info("%s", logMsg)

	if !actor.IsAdmin {
		if req.BoxID == nil {
			s.logger.Warn("GetCarWashBookings: user=%d is not admin and no box given", actor.UserID)
			return nil, ErrAccessDenied
		}
		box, err := s.checkOperatorAccess(ctx, actor, *req.BoxID)
		if err != nil {
			return nil, err
		}
		if box.CarWashID != req.CarWashID {
			return nil, ErrAccessDenied
		}
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCarWashBookings: invalid filter for car_wash=%d: %v", req.CarWashID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate before startDate", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCarWashWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCarWashBookings: repository error for car_wash=%d: %v", req.CarWashID, err)
		return nil, fmt.Errorf("%w: GetCarWashBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCarWashBookings: successfully fetched %d bookings for car_wash=%d", len(bookings), req.CarWashID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateState переводит бронирование в новое состояние.
// Владелец может только отменить бронирование (EXCEPTION),
// остальные переходы доступны оператору бокса и администратору
func (s *Service) UpdateState(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateStateRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateState: booking id=%d to state=%s by user=%d", id, req.State, actor.UserID)

	to, err := domain.ParseBookingState(req.State)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateState", id)
	if err != nil {
		return nil, err
	}

	ownerCancel := booking.UserID == actor.UserID && to == domain.StateException
	if !ownerCancel {
		if _, err := s.checkOperatorAccess(ctx, actor, booking.BoxID); err != nil {
			s.logger.Warn("UpdateState: access denied for user=%d to booking id=%d", actor.UserID, id)
			return nil, err
		}
	}

	from := booking.State
	if err := booking.TransitionTo(to); err != nil {
		s.logger.Warn("UpdateState: booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	if err := s.bookingRepo.UpdateState(ctx, id, from, to); err != nil {
		if errors.Is(err, bookingRepo.ErrStateChanged) {
			s.logger.Warn("UpdateState: booking id=%d changed state concurrently", id)
			return nil, ErrStateChanged
		}
		s.logger.Error("UpdateState: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateState - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateState: booking id=%d moved %s -> %s", id, from, to)
	return models.FromDomainBooking(booking), nil
}

// SetException устанавливает или снимает флаг исключения. Только для администратора.
// Снятие флага снова занимает время бокса, поэтому окно проверяется под блокировкой бокса
func (s *Service) SetException(ctx context.Context, actor domain.Actor, id int64, req *models.SetExceptionRequest) (*models.BookingResponse, error) {
	s.logger.Info("SetException: booking id=%d is_exception=%t by user=%d", id, req.IsException, actor.UserID)

	if !actor.IsAdmin {
		return nil, ErrAccessDenied
	}

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "SetException", id)
		if err != nil {
			return err
		}

		if booking.IsException == req.IsException {
			result = booking
			return nil
		}

		if !req.IsException && booking.State != domain.StateException {
			if err := s.ensureWindowFree(txCtx, booking); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.SetException(txCtx, id, req.IsException); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: SetException - repository error: %w", ErrInternal, err)
		}

		booking.IsException = req.IsException
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("SetException: booking id=%d: %v", id, err)
		} else {
			s.logger.Warn("SetException: booking id=%d: %v", id, err)
		}
		return nil, err
	}

	return models.FromDomainBooking(result), nil
}

// CompleteFinished закрывает начатые бронирования, окончившиеся до now
func (s *Service) CompleteFinished(ctx context.Context, now time.Time) (*models.CompleteFinishedResponse, error) {
	completed, err := s.bookingRepo.CompleteFinished(ctx, now)
	if err != nil {
		s.logger.Error("CompleteFinished: repository error: %v", err)
		return nil, fmt.Errorf("%w: CompleteFinished - repository error: %v", ErrInternal, err)
	}

	if completed > 0 {
		s.logger.Info("CompleteFinished: %d bookings moved to %s", completed, domain.StateCompleted)
	}
	return &models.CompleteFinishedResponse{Completed: completed}, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}

// checkOperatorAccess пропускает администратора и оператора бокса
func (s *Service) checkOperatorAccess(ctx context.Context, actor domain.Actor, boxID int64) (*domain.Box, error) {
	box, err := s.boxRepo.GetBox(ctx, boxID)
	if err != nil {
		if errors.Is(err, carWashRepo.ErrBoxNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, fmt.Errorf("%w: checkOperatorAccess - failed to get box: %v", ErrInternal, err)
	}

	if actor.IsAdmin || box.IsOperatedBy(actor.UserID) {
		return box, nil
	}

	return nil, ErrAccessDenied
}

func (s *Service) ensureWindowFree(ctx context.Context, booking *domain.Booking) error {
	box, err := s.boxRepo.GetBox(ctx, booking.BoxID)
	if err != nil {
		if errors.Is(err, carWashRepo.ErrBoxNotFound) {
			return ErrBoxNotFound
		}
		return fmt.Errorf("%w: SetException - failed to get box: %w", ErrInternal, err)
	}

	if err := s.bookingRepo.LockBox(ctx, box.ID); err != nil {
		return fmt.Errorf("%w: SetException - failed to lock box: %w", ErrInternal, err)
	}

	possible, err := s.admission.IsBookingPossible(ctx, box, booking.StartDatetime, booking.EndDatetime)
	if err != nil {
		return fmt.Errorf("%w: SetException - availability: %w", ErrInternal, err)
	}
	if !possible {
		return ErrBookingNotAvailable
	}

	return nil
}
