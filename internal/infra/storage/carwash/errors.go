package carwash

import "errors"

var (
	// ErrCarWashNotFound возвращается, когда автомойка не найдена
	ErrCarWashNotFound = errors.New("carwash.repository: car wash not found")

	// ErrBoxNotFound возвращается, когда бокс не найден
	ErrBoxNotFound = errors.New("carwash.repository: box not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("carwash.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("carwash.repository: failed to scan row")
)
