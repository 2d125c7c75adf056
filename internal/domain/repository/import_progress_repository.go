package repository

import (
	"context"

	"github.com/boundary-importer/internal/domain"
)

// ImportProgressRepository определяет методы для трекера прогресса импорта
type ImportProgressRepository interface {
	// Start переводит страну в in_progress: счётчики обнуляются,
	// started_at обновляется, completed_at и last_error очищаются
	Start(ctx context.Context, countryCode string, minLevel int) error

	// UpdateLevel фиксирует завершение уровня: current_admin_level := level,
	// relations_fetched += fetched
	UpdateLevel(ctx context.Context, countryCode string, level, fetched int) error

	// MarkCompleted переводит страну в completed и ставит completed_at
	MarkCompleted(ctx context.Context, countryCode string, errs int) error

	// MarkFailed переводит страну в failed с причиной
	MarkFailed(ctx context.Context, countryCode string, reason string) error

	// Get возвращает прогресс страны или ErrProgressNotFound
	Get(ctx context.Context, countryCode string) (*domain.ImportProgress, error)

	// List возвращает прогресс всех стран
	List(ctx context.Context) ([]*domain.ImportProgress, error)

	// ListCompleted возвращает подмножество переданных стран со status=completed
	ListCompleted(ctx context.Context, countryCodes []string) ([]string, error)
}
