package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrBoxNotFound возвращается, когда бокс не найден
	ErrBoxNotFound = errors.New("bookings: box not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidTransition возвращается при недопустимом переходе состояния
	ErrInvalidTransition = errors.New("bookings: invalid state transition")

	// ErrStateChanged возвращается, когда состояние изменилось параллельно
	ErrStateChanged = errors.New("bookings: booking state changed concurrently")

	// ErrBookingNotAvailable возвращается, когда снятие исключения вернет пересечение
	ErrBookingNotAvailable = errors.New("bookings: booking window is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
