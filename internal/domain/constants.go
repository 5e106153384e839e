package domain

import "time"

const (
	// MinWindowDuration минимальная длина свободного фрагмента между бронированиями
	MinWindowDuration = 2 * time.Hour

	// DefaultBookingDuration стандартная длительность бронирования
	DefaultBookingDuration = 2 * time.Hour
)

// Business validation constants
const (
	MaxNotesLength         = 500
	MaxAdditionsPerBooking = 20
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // ISO-8601 без часового пояса
)

// BlockingStates состояния, в которых бронирование занимает бокс
var BlockingStates = []BookingState{
	StateCreated,
	StateAccepted,
	StateStarted,
	StateCompleted,
}
