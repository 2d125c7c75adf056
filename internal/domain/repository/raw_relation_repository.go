package repository

import (
	"context"

	"github.com/boundary-importer/internal/domain"
)

// RawRelationRepository определяет методы для работы с таблицей сырых relations
type RawRelationRepository interface {
	// UpsertBatch сохраняет relations батчами; конфликт по (relation_id, country_code)
	// перезаписывает всё кроме id. Возвращает число обработанных строк.
	UpsertBatch(ctx context.Context, relations []*domain.RawRelation) (int, error)

	// ListByCountry возвращает relations страны,
	// упорядоченные по admin_level ASC, name ASC
	ListByCountry(ctx context.Context, countryCode string) ([]*domain.RawRelation, error)
}
