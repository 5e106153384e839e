package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Request модели

// UpdateStateRequest запрос на смену состояния бронирования
type UpdateStateRequest struct {
	State string `json:"state"`
}

// SetExceptionRequest запрос на установку флага исключения
type SetExceptionRequest struct {
	IsException bool `json:"isException"`
}

// GetUserBookingsRequest запрос бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	State  *string
}

// GetCarWashBookingsRequest запрос бронирований автомойки
type GetCarWashBookingsRequest struct {
	CarWashID         int64
	BoxID             *int64
	StartDate         *time.Time
	EndDate           *time.Time
	State             *string
	IncludeExceptions bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCarWashBookingsRequest) ToDomainFilter() (domain.CarWashBookingsFilter, error) {
	filter := domain.CarWashBookingsFilter{
		CarWashID:         r.CarWashID,
		BoxID:             r.BoxID,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		IncludeExceptions: r.IncludeExceptions,
	}

	if r.State != nil {
		state, err := domain.ParseBookingState(*r.State)
		if err != nil {
			return filter, err
		}
		filter.State = &state
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64                    `json:"id"`
	BoxID         int64                    `json:"boxId"`
	UserCarID     int64                    `json:"userCarId"`
	UserID        int64                    `json:"userId"`
	StartDatetime string                   `json:"startDatetime"` // "2024-01-15T12:00:00"
	EndDatetime   string                   `json:"endDatetime"`
	IsException   bool                     `json:"isException"`
	State         string                   `json:"state"`
	BasePrice     float64                  `json:"basePrice"`
	TotalPrice    float64                  `json:"totalPrice"`
	Additions     []domain.BookingAddition `json:"additions"`
	Notes         *string                  `json:"notes,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CompleteFinishedResponse итог закрытия завершившихся бронирований
type CompleteFinishedResponse struct {
	Completed int64 `json:"completed"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	additions := b.Additions
	if additions == nil {
		additions = []domain.BookingAddition{}
	}

	return &BookingResponse{
		ID:            b.ID,
		BoxID:         b.BoxID,
		UserCarID:     b.UserCarID,
		UserID:        b.UserID,
		StartDatetime: b.StartDatetime.Format(domain.DateTimeFormat),
		EndDatetime:   b.EndDatetime.Format(domain.DateTimeFormat),
		IsException:   b.IsException,
		State:         string(b.State),
		BasePrice:     b.BasePrice,
		TotalPrice:    b.TotalPrice,
		Additions:     additions,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
