package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/catalog"
	priceRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/price"
)

// Service определяет цену мойки по комплектации автомобиля
type Service struct {
	priceRepo   PriceRepository
	catalogRepo CatalogRepository
	cache       Cache
	logger      Logger
}

// Option настройка сервиса
type Option func(*Service)

// WithCache включает кеширование строк цен
func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// NewService создает новый экземпляр сервиса цен
func NewService(priceRepo PriceRepository, catalogRepo CatalogRepository, logger Logger, opts ...Option) *Service {
	s := &Service{
		priceRepo:   priceRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve находит цену для автомойки по комплектации автомобиля.
// Если для типа кузова цены нет, берется цена родительской категории
func (s *Service) Resolve(ctx context.Context, carWashID, configurationID int64) (*domain.Price, error) {
	configuration, err := s.catalogRepo.GetConfiguration(ctx, configurationID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrConfigurationNotFound) {
			return nil, ErrConfigurationNotFound
		}
		return nil, fmt.Errorf("%w: Resolve - get configuration: %w", ErrInternal, err)
	}

	price, err := s.priceFor(ctx, carWashID, configuration.BodyTypeID)
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, ErrPriceNotFound) {
		return nil, err
	}

	bodyType, err := s.catalogRepo.GetBodyType(ctx, configuration.BodyTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBodyTypeNotFound) {
			return nil, fmt.Errorf("%w: body type %d", ErrPriceNotFound, configuration.BodyTypeID)
		}
		return nil, fmt.Errorf("%w: Resolve - get body type: %w", ErrInternal, err)
	}

	if bodyType.ParentID == nil {
		return nil, fmt.Errorf("%w: car wash %d, body type %d", ErrPriceNotFound, carWashID, bodyType.ID)
	}

	s.logger.Info("Resolve: no price for body type %d at car wash %d, trying parent %d",
		bodyType.ID, carWashID, *bodyType.ParentID)

	price, err = s.priceFor(ctx, carWashID, *bodyType.ParentID)
	if errors.Is(err, ErrPriceNotFound) {
		return nil, fmt.Errorf("%w: car wash %d, body type %d and parent %d",
			ErrPriceNotFound, carWashID, bodyType.ID, *bodyType.ParentID)
	}
	return price, err
}

// ResolveAdditions фиксирует цены дополнительных услуг автомойки.
// Повторяющиеся id учитываются один раз
func (s *Service) ResolveAdditions(ctx context.Context, carWashID int64, ids []int64) ([]domain.BookingAddition, error) {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return []domain.BookingAddition{}, nil
	}

	additions, err := s.priceRepo.GetAdditions(ctx, carWashID, unique)
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveAdditions - get additions: %w", ErrInternal, err)
	}

	if len(additions) != len(unique) {
		return nil, fmt.Errorf("%w: requested %d, found %d at car wash %d",
			ErrAdditionNotFound, len(unique), len(additions), carWashID)
	}

	result := make([]domain.BookingAddition, 0, len(additions))
	for _, addition := range additions {
		result = append(result, addition.ToBookingAddition())
	}
	return result, nil
}

// Total базовая цена плюс сумма дополнительных услуг
func Total(base float64, additions []domain.BookingAddition) float64 {
	total := base
	for _, addition := range additions {
		total += addition.Price
	}
	return total
}

func (s *Service) priceFor(ctx context.Context, carWashID, bodyTypeID int64) (*domain.Price, error) {
	key := priceKey(carWashID, bodyTypeID)

	if s.cache != nil {
		var cached domain.Price
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Warn("Resolve: cache get %s failed: %v", key, err)
		} else if found {
			return &cached, nil
		}
	}

	price, err := s.priceRepo.GetPrice(ctx, carWashID, bodyTypeID)
	if err != nil {
		if errors.Is(err, priceRepo.ErrPriceNotFound) {
			return nil, ErrPriceNotFound
		}
		return nil, fmt.Errorf("%w: Resolve - get price: %w", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, price); err != nil {
			s.logger.Warn("Resolve: cache set %s failed: %v", key, err)
		}
	}

	return price, nil
}

func priceKey(carWashID, bodyTypeID int64) string {
	return fmt.Sprintf("price:%d:%d", carWashID, bodyTypeID)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
