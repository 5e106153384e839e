package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition возвращается при недопустимом переходе состояния бронирования
var ErrInvalidTransition = errors.New("domain: invalid booking state transition")

// BookingState состояние бронирования
type BookingState string

const (
	StateCreated   BookingState = "CREATED"
	StateAccepted  BookingState = "ACCEPTED"
	StateStarted   BookingState = "STARTED"
	StateCompleted BookingState = "COMPLETED"
	StateException BookingState = "EXCEPTION"
)

// transitions допустимые переходы. COMPLETED и EXCEPTION конечные
var transitions = map[BookingState][]BookingState{
	StateCreated:  {StateAccepted, StateException},
	StateAccepted: {StateStarted, StateException},
	StateStarted:  {StateCompleted, StateException},
}

// ParseBookingState разбирает строку состояния
func ParseBookingState(s string) (BookingState, error) {
	state := BookingState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, s)
	}
	return state, nil
}

// IsValid проверяет, что состояние известно
func (s BookingState) IsValid() bool {
	switch s {
	case StateCreated, StateAccepted, StateStarted, StateCompleted, StateException:
		return true
	default:
		return false
	}
}

// IsTerminal true для состояний без исходящих переходов
func (s BookingState) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition проверяет переход from -> to
func CanTransition(from, to BookingState) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// BookingAddition дополнительная услуга с ценой на момент создания бронирования
type BookingAddition struct {
	AdditionID int64   `json:"additionId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
}

// Booking бронирование бокса
type Booking struct {
	ID            int64
	BoxID         int64
	UserCarID     int64
	UserID        int64
	StartDatetime time.Time
	EndDatetime   time.Time

	// IsException бронирование вне общего учета (ручной резерв), не занимает время бокса
	IsException bool
	State       BookingState

	BasePrice  float64
	TotalPrice float64
	Additions  []BookingAddition
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransitionTo переводит бронирование в новое состояние
func (b *Booking) TransitionTo(to BookingState) error {
	if !CanTransition(b.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.State, to)
	}
	b.State = to
	return nil
}

// BlocksAvailability true, если бронирование занимает время бокса
func (b *Booking) BlocksAvailability() bool {
	return !b.IsException && b.State != StateException
}

// Duration длительность бронирования
func (b *Booking) Duration() time.Duration {
	return b.EndDatetime.Sub(b.StartDatetime)
}

// CarWashBookingsFilter фильтр бронирований автомойки
type CarWashBookingsFilter struct {
	CarWashID         int64         // Обязательный параметр
	BoxID             *int64        // Фильтр по боксу
	StartDate         *time.Time    // Начало периода (включительно)
	EndDate           *time.Time    // Конец периода (включительно)
	State             *BookingState // Фильтр по состоянию
	IncludeExceptions bool          // Включать бронирования-исключения
}
