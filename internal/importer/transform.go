package importer

import (
	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/geometry"
)

// TransformStats - счетчики отбраковки при подготовке обогащенных записей
type TransformStats struct {
	MissingWikidata int
	MissingCategory int
	InvalidGeometry int
	Duplicates      int
	Accepted        int
}

// Transform соединяет сырые relations с картой категорий Commons и
// готовит записи для обогащенной таблицы.
//
// Порядок отбраковки фиксирован: без wikidata_id, без категории,
// с невалидной геометрией, дубликат wikidata_id. При дубликатах
// выживает первая запись входного порядка (admin_level ASC, name ASC).
func Transform(relations []*domain.RawRelation, categories map[string]string) ([]*domain.EnrichedBoundary, *TransformStats) {
	stats := &TransformStats{}
	seen := make(map[string]struct{})
	records := make([]*domain.EnrichedBoundary, 0, len(relations))

	for _, rel := range relations {
		if rel.WikidataID == nil {
			stats.MissingWikidata++
			continue
		}

		category, ok := categories[*rel.WikidataID]
		if !ok {
			stats.MissingCategory++
			continue
		}

		if err := geometry.ValidateEWKT(rel.Geometry); err != nil {
			stats.InvalidGeometry++
			continue
		}

		if _, dup := seen[*rel.WikidataID]; dup {
			stats.Duplicates++
			continue
		}
		seen[*rel.WikidataID] = struct{}{}

		records = append(records, &domain.EnrichedBoundary{
			WikidataID:      *rel.WikidataID,
			CommonsCategory: category,
			AdminLevel:      rel.AdminLevel,
			Name:            rel.Name,
			Geom:            rel.Geometry,
		})
	}

	stats.Accepted = len(records)
	return records, stats
}
