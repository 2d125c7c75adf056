package repository

import (
	"context"

	"github.com/boundary-importer/internal/domain"
)

// OverpassRepository определяет методы для работы с Overpass API
type OverpassRepository interface {
	// FetchCountryRelationIDs возвращает id relations уровня level
	// для страны с тегом ISO3166-1:alpha3=iso3
	FetchCountryRelationIDs(ctx context.Context, iso3 string, level int) ([]int64, error)

	// FetchChildRelationIDs возвращает id relations уровня level
	// внутри area родительской relation
	FetchChildRelationIDs(ctx context.Context, parentID int64, level int) ([]int64, error)

	// FetchGeometry возвращает relations с полной геометрией их way-членов
	FetchGeometry(ctx context.Context, ids []int64) (*domain.OSMGeometryBatch, error)
}
