package pricing

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// PriceRepository интерфейс репозитория цен
type PriceRepository interface {
	GetPrice(ctx context.Context, carWashID, bodyTypeID int64) (*domain.Price, error)
	GetAdditions(ctx context.Context, carWashID int64, ids []int64) ([]*domain.Addition, error)
}

// CatalogRepository интерфейс каталога автомобилей
type CatalogRepository interface {
	GetConfiguration(ctx context.Context, id int64) (*domain.CarConfiguration, error)
	GetBodyType(ctx context.Context, id int64) (*domain.BodyType, error)
}

// Cache кеш строк цен
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
