package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// Repository репозиторий учетных записей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create заводит учетную запись, возвращает ее ID
func (r *Repository) Create(ctx context.Context, user *domain.User) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := createQuery(user).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return id, nil
}

func createQuery(user *domain.User) squirrel.InsertBuilder {
	return psqlbuilder.Insert("users").
		Columns("email", "password_hash", "is_admin").
		Values(strings.ToLower(strings.TrimSpace(user.Email)), user.PasswordHash, user.IsAdmin).
		Suffix("RETURNING id")
}

// GetByEmail получает пользователя по email без учета регистра
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "password_hash", "is_admin").
		From("users").
		Where(squirrel.Eq{"LOWER(email)": strings.ToLower(email)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	var user domain.User
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan user: %w", ErrScanRow, err)
	}

	return &user, nil
}
