package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/domain/repository"
	"github.com/boundary-importer/internal/pkg/errors"
)

type importProgressRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewImportProgressRepository создает новый экземпляр ImportProgressRepository
func NewImportProgressRepository(db *DB) repository.ImportProgressRepository {
	return &importProgressRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Start переводит страну в in_progress. Счетчики обнуляются и при повторном
// запуске: прерванный прогон переделывает работу с начала.
func (r *importProgressRepository) Start(ctx context.Context, countryCode string, minLevel int) error {
	query := `
		INSERT INTO import_progress
			(country_code, current_admin_level, status, relations_fetched, errors, started_at, completed_at, last_error)
		VALUES ($1, $2, 'in_progress', 0, 0, NOW(), NULL, NULL)
		ON CONFLICT (country_code) DO UPDATE SET
			current_admin_level = EXCLUDED.current_admin_level,
			status = 'in_progress',
			relations_fetched = 0,
			errors = 0,
			started_at = NOW(),
			completed_at = NULL,
			last_error = NULL
	`

	if _, err := r.db.ExecContext(ctx, query, countryCode, minLevel); err != nil {
		r.logger.Error("Failed to start import progress",
			zap.String("country", countryCode),
			zap.Error(err))
		return fmt.Errorf("failed to start progress for %s: %w", countryCode, err)
	}
	return nil
}

// UpdateLevel фиксирует завершение уровня
func (r *importProgressRepository) UpdateLevel(ctx context.Context, countryCode string, level, fetched int) error {
	query := `
		UPDATE import_progress
		SET current_admin_level = $2,
		    relations_fetched = relations_fetched + $3
		WHERE country_code = $1
	`

	if _, err := r.db.ExecContext(ctx, query, countryCode, level, fetched); err != nil {
		r.logger.Error("Failed to update import level",
			zap.String("country", countryCode),
			zap.Int("level", level),
			zap.Error(err))
		return fmt.Errorf("failed to update progress for %s: %w", countryCode, err)
	}
	return nil
}

// MarkCompleted переводит страну в completed
func (r *importProgressRepository) MarkCompleted(ctx context.Context, countryCode string, errs int) error {
	query := `
		UPDATE import_progress
		SET status = 'completed',
		    errors = $2,
		    completed_at = NOW(),
		    last_error = NULL
		WHERE country_code = $1
	`

	if _, err := r.db.ExecContext(ctx, query, countryCode, errs); err != nil {
		r.logger.Error("Failed to mark import completed",
			zap.String("country", countryCode),
			zap.Error(err))
		return fmt.Errorf("failed to complete progress for %s: %w", countryCode, err)
	}
	return nil
}

// MarkFailed переводит страну в failed с причиной
func (r *importProgressRepository) MarkFailed(ctx context.Context, countryCode string, reason string) error {
	query := `
		UPDATE import_progress
		SET status = 'failed',
		    last_error = $2
		WHERE country_code = $1
	`

	if _, err := r.db.ExecContext(ctx, query, countryCode, reason); err != nil {
		r.logger.Error("Failed to mark import failed",
			zap.String("country", countryCode),
			zap.Error(err))
		return fmt.Errorf("failed to fail progress for %s: %w", countryCode, err)
	}
	return nil
}

// Get возвращает прогресс страны
func (r *importProgressRepository) Get(ctx context.Context, countryCode string) (*domain.ImportProgress, error) {
	query := `
		SELECT country_code, current_admin_level, status, relations_fetched,
		       errors, started_at, completed_at, last_error
		FROM import_progress
		WHERE country_code = $1
	`

	var progress domain.ImportProgress
	err := r.db.QueryRowContext(ctx, query, countryCode).Scan(
		&progress.CountryCode, &progress.CurrentAdminLevel, &progress.Status,
		&progress.RelationsFetched, &progress.Errors, &progress.StartedAt,
		&progress.CompletedAt, &progress.LastError,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrProgressNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get import progress",
			zap.String("country", countryCode),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &progress, nil
}

// List возвращает прогресс всех стран
func (r *importProgressRepository) List(ctx context.Context) ([]*domain.ImportProgress, error) {
	query := `
		SELECT country_code, current_admin_level, status, relations_fetched,
		       errors, started_at, completed_at, last_error
		FROM import_progress
		ORDER BY country_code
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list import progress", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var result []*domain.ImportProgress
	for rows.Next() {
		var progress domain.ImportProgress
		err := rows.Scan(
			&progress.CountryCode, &progress.CurrentAdminLevel, &progress.Status,
			&progress.RelationsFetched, &progress.Errors, &progress.StartedAt,
			&progress.CompletedAt, &progress.LastError,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		result = append(result, &progress)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("progress rows error: %w", err)
	}

	return result, nil
}

// ListCompleted возвращает подмножество стран со статусом completed
func (r *importProgressRepository) ListCompleted(ctx context.Context, countryCodes []string) ([]string, error) {
	query := `
		SELECT country_code
		FROM import_progress
		WHERE status = 'completed' AND country_code = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(countryCodes))
	if err != nil {
		r.logger.Error("Failed to list completed countries", zap.Error(err))
		return nil, fmt.Errorf("failed to list completed countries: %w", err)
	}
	defer rows.Close()

	var completed []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan country code: %w", err)
		}
		completed = append(completed, code)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completed countries rows error: %w", err)
	}

	return completed, nil
}
