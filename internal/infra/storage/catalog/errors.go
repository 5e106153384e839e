package catalog

import "errors"

var (
	// ErrUserCarNotFound возвращается, когда автомобиль пользователя не найден
	ErrUserCarNotFound = errors.New("catalog.repository: user car not found")

	// ErrConfigurationNotFound возвращается, когда комплектация не найдена
	ErrConfigurationNotFound = errors.New("catalog.repository: configuration not found")

	// ErrBodyTypeNotFound возвращается, когда тип кузова не найден
	ErrBodyTypeNotFound = errors.New("catalog.repository: body type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
