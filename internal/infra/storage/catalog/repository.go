package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// Repository репозиторий каталога автомобилей: автомобили пользователей,
// комплектации и типы кузова
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUserCar получает автомобиль пользователя по ID
func (r *Repository) GetUserCar(ctx context.Context, id int64) (*domain.UserCar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "user_id", "name", "configuration_id", "is_verified").
		From("user_cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUserCar - build select query: %v", ErrBuildQuery, err)
	}

	var car domain.UserCar
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&car.ID, &car.UserID, &car.Name, &car.ConfigurationID, &car.IsVerified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserCar - scan user car: %w", ErrScanRow, err)
	}

	return &car, nil
}

// GetConfiguration получает комплектацию по ID
func (r *Repository) GetConfiguration(ctx context.Context, id int64) (*domain.CarConfiguration, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "generation_id", "body_type_id").
		From("car_configurations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfiguration - build select query: %v", ErrBuildQuery, err)
	}

	var configuration domain.CarConfiguration
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&configuration.ID, &configuration.GenerationID, &configuration.BodyTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigurationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfiguration - scan configuration: %w", ErrScanRow, err)
	}

	return &configuration, nil
}

// GetBodyType получает тип кузова по ID
func (r *Repository) GetBodyType(ctx context.Context, id int64) (*domain.BodyType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "parent_id").
		From("body_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBodyType - build select query: %v", ErrBuildQuery, err)
	}

	var (
		bodyType domain.BodyType
		parentID sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&bodyType.ID, &bodyType.Name, &parentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBodyTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBodyType - scan body type: %w", ErrScanRow, err)
	}

	if parentID.Valid {
		bodyType.ParentID = &parentID.Int64
	}

	return &bodyType, nil
}
