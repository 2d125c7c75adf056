package repository

import (
	"context"

	"github.com/boundary-importer/internal/domain"
)

// EnrichedBoundaryRepository определяет методы для работы с таблицей обогащённых границ
type EnrichedBoundaryRepository interface {
	// UpsertBatch апсертит записи батчами по ключу wikidata_id.
	// Ошибка отдельной строки фиксируется в результате и не прерывает батч;
	// ошибка транзакции откатывает батч, обработка продолжается со следующего.
	UpsertBatch(ctx context.Context, records []*domain.EnrichedBoundary) (*domain.PersistResult, error)

	// GetByWikidataID возвращает границу по wikidata_id
	GetByWikidataID(ctx context.Context, wikidataID string) (*domain.EnrichedBoundary, error)

	// FindByPoint возвращает границы, содержащие точку,
	// упорядоченные по admin_level ASC. adminLevels опционально сужает поиск.
	FindByPoint(ctx context.Context, lat, lon float64, adminLevels []int) ([]*domain.EnrichedBoundary, error)
}
