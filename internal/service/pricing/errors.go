package pricing

import "errors"

var (
	// ErrPriceNotFound нет цены ни для типа кузова, ни для его родительской категории.
	// Ошибка конфигурации каталога, а не отказ в бронировании
	ErrPriceNotFound = errors.New("pricing: price not found for body type")

	// ErrConfigurationNotFound возвращается, когда комплектация автомобиля не найдена
	ErrConfigurationNotFound = errors.New("pricing: car configuration not found")

	// ErrAdditionNotFound возвращается, когда услуга не найдена на автомойке
	ErrAdditionNotFound = errors.New("pricing: addition not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
