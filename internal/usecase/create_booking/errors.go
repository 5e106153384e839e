package create_booking

import "errors"

var (
	// ErrBoxNotFound возвращается, когда бокс не найден
	ErrBoxNotFound = errors.New("create_booking: box not found")

	// ErrUserCarNotFound возвращается, когда автомобиль пользователя не найден
	ErrUserCarNotFound = errors.New("create_booking: user car not found")

	// ErrConfigurationNotFound возвращается, когда комплектация автомобиля не найдена
	ErrConfigurationNotFound = errors.New("create_booking: car configuration not found")

	// ErrAccessDenied возвращается, когда автомобиль принадлежит другому пользователю
	ErrAccessDenied = errors.New("create_booking: car belongs to another user")

	// ErrBookingNotAvailable возвращается, когда окно не помещается ни в один свободный интервал
	ErrBookingNotAvailable = errors.New("create_booking: requested time is not available")

	// ErrPriceNotFound возвращается, когда для типа кузова и его категории нет цены
	ErrPriceNotFound = errors.New("create_booking: price not configured for body type")

	// ErrAdditionNotFound возвращается, когда дополнительная услуга не найдена на автомойке
	ErrAdditionNotFound = errors.New("create_booking: addition not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
