package price

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

// Repository репозиторий цен и дополнительных услуг автомоек
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория цен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetPrice получает цену мойки для пары (автомойка, тип кузова)
func (r *Repository) GetPrice(ctx context.Context, carWashID, bodyTypeID int64) (*domain.Price, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "car_wash_id", "body_type_id", "price").
		From("car_wash_prices").
		Where(squirrel.Eq{"car_wash_id": carWashID, "body_type_id": bodyTypeID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPrice - build select query: %v", ErrBuildQuery, err)
	}

	var price domain.Price
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&price.ID, &price.CarWashID, &price.BodyTypeID, &price.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPrice - scan price: %w", ErrScanRow, err)
	}

	return &price, nil
}

// GetAdditions получает дополнительные услуги автомойки по списку ID.
// Услуги других автомоек не возвращаются
func (r *Repository) GetAdditions(ctx context.Context, carWashID int64, ids []int64) ([]*domain.Addition, error) {
	if len(ids) == 0 {
		return []*domain.Addition{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := additionsQuery(carWashID, ids).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAdditions - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAdditions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	additions := make([]*domain.Addition, 0, len(ids))
	for rows.Next() {
		var addition domain.Addition
		if err := rows.Scan(&addition.ID, &addition.CarWashID, &addition.Name, &addition.Price); err != nil {
			return nil, fmt.Errorf("%w: GetAdditions - scan row: %v", ErrScanRow, err)
		}
		additions = append(additions, &addition)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAdditions - rows error: %w", ErrScanRow, err)
	}

	return additions, nil
}

func additionsQuery(carWashID int64, ids []int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "car_wash_id", "name", "price").
		From("car_wash_additions").
		Where(squirrel.Eq{"car_wash_id": carWashID}).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC")
}
