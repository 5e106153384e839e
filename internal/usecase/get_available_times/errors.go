package get_available_times

import "errors"

var (
	// ErrCarWashNotFound возвращается, когда автомойка не найдена
	ErrCarWashNotFound = errors.New("get_available_times: car wash not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_times: invalid input data")

	// ErrInvalidSchedule возвращается, когда в расписании время закрытия не позже открытия.
	// Это дефект данных, а не отказ в бронировании
	ErrInvalidSchedule = errors.New("get_available_times: malformed schedule")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_times: internal error")
)
