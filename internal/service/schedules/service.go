package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carWashRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/carwash"
	scheduleRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-CarWashService/internal/service/schedules/models"
)

// Service сервис недельных расписаний автомоек
type Service struct {
	scheduleRepo ScheduleRepository
	carWashRepo  CarWashRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, carWashRepo CarWashRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		carWashRepo:  carWashRepo,
		logger:       logger,
	}
}

// GetByCarWash получает недельное расписание автомойки.
// Публичный метод
func (s *Service) GetByCarWash(ctx context.Context, carWashID int64) (*models.ScheduleListResponse, error) {
	s.logger.Info("GetByCarWash: fetching schedules for car_wash=%d", carWashID)

	if err := s.ensureCarWash(ctx, "GetByCarWash", carWashID); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.GetByCarWash(ctx, carWashID)
	if err != nil {
		s.logger.Error("GetByCarWash: repository error for car_wash=%d: %v", carWashID, err)
		return nil, fmt.Errorf("%w: GetByCarWash - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainScheduleList(schedules), nil
}

// Upsert создает или заменяет расписание дня недели. Только для администратора
func (s *Service) Upsert(ctx context.Context, actor domain.Actor, carWashID int64, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Upsert: car_wash=%d, day=%d, %s-%s by user=%d",
		carWashID, req.DayOfWeek, req.StartTime, req.EndTime, actor.UserID)

	// 1. Права доступа
	if !actor.IsAdmin {
		s.logger.Warn("Upsert: user=%d is not admin", actor.UserID)
		return nil, ErrAccessDenied
	}

	// 2. Валидация
	schedule, err := req.ToDomainSchedule(carWashID)
	if err != nil {
		s.logger.Warn("Upsert: invalid time: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Автомойка существует
	if err := s.ensureCarWash(ctx, "Upsert", carWashID); err != nil {
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.scheduleRepo.Upsert(ctx, schedule)
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved schedule id=%d", saved.ID)
	return models.FromDomainSchedule(saved), nil
}

// Delete удаляет расписание автомойки. Только для администратора
func (s *Service) Delete(ctx context.Context, actor domain.Actor, carWashID, scheduleID int64) error {
	s.logger.Info("Delete: schedule id=%d of car_wash=%d by user=%d", scheduleID, carWashID, actor.UserID)

	if !actor.IsAdmin {
		s.logger.Warn("Delete: user=%d is not admin", actor.UserID)
		return ErrAccessDenied
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", scheduleID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// расписание чужой автомойки не раскрываем
	if schedule.CarWashID != carWashID {
		return ErrScheduleNotFound
	}

	if err := s.scheduleRepo.Delete(ctx, scheduleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("Delete: repository error for schedule id=%d: %v", scheduleID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted schedule id=%d", scheduleID)
	return nil
}

func (s *Service) ensureCarWash(ctx context.Context, op string, carWashID int64) error {
	if _, err := s.carWashRepo.GetCarWash(ctx, carWashID); err != nil {
		if errors.Is(err, carWashRepo.ErrCarWashNotFound) {
			s.logger.Warn("%s: car wash id=%d not found", op, carWashID)
			return ErrCarWashNotFound
		}
		s.logger.Error("%s: failed to get car wash id=%d: %v", op, carWashID, err)
		return fmt.Errorf("%w: %s - failed to get car wash: %v", ErrInternal, op, err)
	}
	return nil
}
