package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64     // ID пользователя из токена
	BoxID         int64     // ID бокса
	UserCarID     int64     // ID автомобиля пользователя
	StartDatetime time.Time // Начало, без часового пояса
	EndDatetime   time.Time // Окончание, без часового пояса
	AdditionIDs   []int64   // Дополнительные услуги автомойки
	Notes         *string   // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	BoxID         int64
	UserCarID     int64
	UserID        int64
	StartDatetime time.Time
	EndDatetime   time.Time
	State         domain.BookingState
	BasePrice     float64
	TotalPrice    float64
	Additions     []domain.BookingAddition
	Notes         *string
	CreatedAt     time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		BoxID:         b.BoxID,
		UserCarID:     b.UserCarID,
		UserID:        b.UserID,
		StartDatetime: b.StartDatetime,
		EndDatetime:   b.EndDatetime,
		State:         b.State,
		BasePrice:     b.BasePrice,
		TotalPrice:    b.TotalPrice,
		Additions:     b.Additions,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
	}
}
