package carwash

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

const (
	tableCarWashes = "car_washes"
	tableBoxes     = "boxes"
)

// Repository репозиторий автомоек и их боксов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCarWash получает автомойку по ID
func (r *Repository) GetCarWash(ctx context.Context, id int64) (*domain.CarWash, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "location_id", "phone_number").
		From(tableCarWashes).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCarWash - build select query: %v", ErrBuildQuery, err)
	}

	var (
		carWash     domain.CarWash
		locationID  sql.NullInt64
		phoneNumber sql.NullString
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&carWash.ID, &carWash.Name, &locationID, &phoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarWashNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCarWash - scan car wash: %w", ErrScanRow, err)
	}

	if locationID.Valid {
		carWash.LocationID = &locationID.Int64
	}
	if phoneNumber.Valid {
		carWash.PhoneNumber = &phoneNumber.String
	}

	return &carWash, nil
}

// GetBox получает бокс по ID
func (r *Repository) GetBox(ctx context.Context, id int64) (*domain.Box, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "car_wash_id", "user_id").
		From(tableBoxes).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBox - build select query: %v", ErrBuildQuery, err)
	}

	var (
		box    domain.Box
		userID sql.NullInt64
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&box.ID, &box.Name, &box.CarWashID, &userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBoxNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBox - scan box: %w", ErrScanRow, err)
	}

	if userID.Valid {
		box.UserID = &userID.Int64
	}

	return &box, nil
}
