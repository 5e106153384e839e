package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	createBooking "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BoxID         int64   `json:"box_id"`
	UserCarID     int64   `json:"user_car_id"`
	StartDatetime string  `json:"start_datetime"` // "2024-01-15T12:00:00"
	EndDatetime   string  `json:"end_datetime"`
	Additions     []int64 `json:"additions,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64                    `json:"id"`
	BoxID         int64                    `json:"boxId"`
	UserCarID     int64                    `json:"userCarId"`
	UserID        int64                    `json:"userId"`
	StartDatetime string                   `json:"startDatetime"`
	EndDatetime   string                   `json:"endDatetime"`
	State         string                   `json:"state"`
	BasePrice     float64                  `json:"basePrice"`
	TotalPrice    float64                  `json:"totalPrice"`
	Additions     []domain.BookingAddition `json:"additions"`
	Notes         *string                  `json:"notes,omitempty"`
	CreatedAt     string                   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	start, err := time.Parse(domain.DateTimeFormat, r.StartDatetime)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateTimeFormat, r.EndDatetime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:        userID,
		BoxID:         r.BoxID,
		UserCarID:     r.UserCarID,
		StartDatetime: start,
		EndDatetime:   end,
		AdditionIDs:   r.Additions,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	additions := resp.Additions
	if additions == nil {
		additions = []domain.BookingAddition{}
	}

	return &BookingResponse{
		ID:            resp.ID,
		BoxID:         resp.BoxID,
		UserCarID:     resp.UserCarID,
		UserID:        resp.UserID,
		StartDatetime: resp.StartDatetime.Format(domain.DateTimeFormat),
		EndDatetime:   resp.EndDatetime.Format(domain.DateTimeFormat),
		State:         string(resp.State),
		BasePrice:     resp.BasePrice,
		TotalPrice:    resp.TotalPrice,
		Additions:     additions,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
