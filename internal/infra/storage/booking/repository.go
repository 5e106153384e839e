package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	additions, err := encodeAdditions(booking.Additions)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"box_id",
			"user_car_id",
			"user_id",
			"start_datetime",
			"end_datetime",
			"is_exception",
			"state",
			"base_price",
			"total_price",
			"additions",
			"notes",
		).
		Values(
			booking.BoxID,
			booking.UserCarID,
			booking.UserID,
			booking.StartDatetime,
			booking.EndDatetime,
			booking.IsException,
			booking.State,
			booking.BasePrice,
			booking.TotalPrice,
			additions,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// LockBox берет транзакционную advisory-блокировку бокса.
// Блокировка снимается при завершении транзакции и сериализует проверку доступности и вставку
func (r *Repository) LockBox(ctx context.Context, boxID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrLockNotInTransaction
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", boxID); err != nil {
		return fmt.Errorf("%w: LockBox - execute lock: %w", ErrExecQuery, err)
	}
	return nil
}

// GetDayRows получает одним запросом расписание боксов автомойки на дату и их бронирования
func (r *Repository) GetDayRows(ctx context.Context, carWashID int64, date time.Time) ([]domain.DayRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := dayRowsQuery(carWashID, date).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayRows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayRows - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.DayRow, 0)
	for rows.Next() {
		var row domain.DayRow
		var bookingStart, bookingEnd sql.NullTime

		if err := rows.Scan(&row.BoxID, &row.ScheduleStart, &row.ScheduleEnd, &bookingStart, &bookingEnd); err != nil {
			return nil, fmt.Errorf("%w: GetDayRows - scan row: %v", ErrScanRow, err)
		}

		if bookingStart.Valid && bookingEnd.Valid {
			row.BookingStart = &bookingStart.Time
			row.BookingEnd = &bookingEnd.Time
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDayRows - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает бронирования пользователя, новые первыми.
// Опционально фильтрует по состоянию
func (r *Repository) GetByUserID(ctx context.Context, userID int64, state *domain.BookingState) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_datetime DESC")

	if state != nil {
		builder = builder.Where(squirrel.Eq{"state": *state})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCarWashWithFilter получает бронирования автомойки с фильтрацией
// по боксу, периоду, состоянию и флагу исключения
func (r *Repository) GetByCarWashWithFilter(ctx context.Context, filter domain.CarWashBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := carWashBookingsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCarWashWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCarWashWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateState переводит бронирование из состояния from в to.
// Если состояние уже изменилось, возвращает ErrStateChanged
func (r *Repository) UpdateState(ctx context.Context, id int64, from, to domain.BookingState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("state", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "state": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStateChanged
	}

	return nil
}

// SetException устанавливает флаг исключения
func (r *Repository) SetException(ctx context.Context, id int64, isException bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("is_exception", isException).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetException - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetException - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CompleteFinished переводит начатые бронирования, закончившиеся до before, в COMPLETED.
// Возвращает количество обновленных бронирований
func (r *Repository) CompleteFinished(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("state", domain.StateCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"state": domain.StateStarted}).
		Where(squirrel.LtOrEq{"end_datetime": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteFinished - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var additions []byte
	var notes sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BoxID,
		&booking.UserCarID,
		&booking.UserID,
		&booking.StartDatetime,
		&booking.EndDatetime,
		&booking.IsException,
		&booking.State,
		&booking.BasePrice,
		&booking.TotalPrice,
		&additions,
		&notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if booking.Additions, err = decodeAdditions(additions); err != nil {
		return nil, err
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// encodeAdditions строка, а не []byte: lib/pq передает []byte как bytea
func encodeAdditions(additions []domain.BookingAddition) (string, error) {
	if additions == nil {
		additions = []domain.BookingAddition{}
	}
	raw, err := json.Marshal(additions)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeAdditions, err)
	}
	return string(raw), nil
}

func decodeAdditions(raw []byte) ([]domain.BookingAddition, error) {
	additions := make([]domain.BookingAddition, 0)
	if len(raw) == 0 {
		return additions, nil
	}
	if err := json.Unmarshal(raw, &additions); err != nil {
		return nil, fmt.Errorf("decode additions: %w", err)
	}
	return additions, nil
}
