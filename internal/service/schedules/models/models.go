package models

import (
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Request модели

// UpsertScheduleRequest запрос на создание или замену расписания дня недели
type UpsertScheduleRequest struct {
	DayOfWeek   int    `json:"dayOfWeek"`   // 0 = понедельник
	StartTime   string `json:"startTime"`   // "08:00"
	EndTime     string `json:"endTime"`     // "18:00"
	IsAvailable *bool  `json:"isAvailable"` // по умолчанию true
}

// ToDomainSchedule конвертирует request в domain модель
func (r *UpsertScheduleRequest) ToDomainSchedule(carWashID int64) (*domain.Schedule, error) {
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.Schedule{
		CarWashID:   carWashID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: ptr.Deref(r.IsAvailable, true),
	}, nil
}

// Response модели

// ScheduleResponse ответ с расписанием дня недели
type ScheduleResponse struct {
	ID          int64  `json:"id"`
	CarWashID   int64  `json:"carWashId"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// ScheduleListResponse недельное расписание автомойки
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	return &ScheduleResponse{
		ID:          s.ID,
		CarWashID:   s.CarWashID,
		DayOfWeek:   s.DayOfWeek,
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		IsAvailable: s.IsAvailable,
	}
}

// FromDomainScheduleList конвертирует список domain моделей в DTO
func FromDomainScheduleList(schedules []*domain.Schedule) *ScheduleListResponse {
	resp := &ScheduleListResponse{Schedules: make([]ScheduleResponse, 0, len(schedules))}
	for _, s := range schedules {
		resp.Schedules = append(resp.Schedules, *FromDomainSchedule(s))
	}
	return resp
}
