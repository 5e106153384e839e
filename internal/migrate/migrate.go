package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var fs embed.FS

// Logger логгер применения миграций
type Logger interface {
	Info(format string, v ...interface{})
}

// Files имена встроенных миграций в порядке применения
func Files() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	return files, nil
}

// Up применяет неприменённые миграции, каждую в своей транзакции.
// Возвращает число применённых файлов
func Up(ctx context.Context, db *sql.DB, logger Logger) (int, error) {
	files, err := Files()
	if err != nil {
		return 0, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	applied := 0
	for _, f := range files {
		var done bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, f,
		).Scan(&done); err != nil {
			return applied, fmt.Errorf("migrate: check %s: %w", f, err)
		}
		if done {
			continue
		}

		if err := apply(ctx, db, f); err != nil {
			return applied, err
		}
		logger.Info("Migrate: applied %s", f)
		applied++
	}

	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, file string) (err error) {
	body, err := fs.ReadFile(file)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin %s: %w", file, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("migrate: apply %s: %w", file, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, file); err != nil {
		return fmt.Errorf("migrate: record %s: %w", file, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit %s: %w", file, err)
	}
	return nil
}
