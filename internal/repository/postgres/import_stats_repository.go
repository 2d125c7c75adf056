package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain/repository"
)

type importStatsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewImportStatsRepository создает новый экземпляр ImportStatsRepository
func NewImportStatsRepository(db *DB) repository.ImportStatsRepository {
	return &importStatsRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// CountRawByLevel возвращает число сырых relations страны по уровням
func (r *importStatsRepository) CountRawByLevel(ctx context.Context, countryCode string) (map[int]int, error) {
	query := `
		SELECT admin_level, COUNT(*) as count
		FROM osm_boundary_relations
		WHERE country_code = $1
		GROUP BY admin_level
		ORDER BY admin_level
	`

	rows, err := r.db.QueryContext(ctx, query, countryCode)
	if err != nil {
		return nil, fmt.Errorf("query raw counts by level: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("scan raw count row: %w", err)
		}
		counts[level] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("raw count rows error: %w", err)
	}

	return counts, nil
}

// CountWikidataMatches возвращает число обогащенных строк,
// чей wikidata_id присутствует в сырой таблице страны
func (r *importStatsRepository) CountWikidataMatches(ctx context.Context, countryCode string) (int, error) {
	query := `
		SELECT COUNT(DISTINCT e.wikidata_id)
		FROM enriched_boundaries e
		JOIN osm_boundary_relations r
			ON r.wikidata_id = e.wikidata_id AND r.country_code = $1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, countryCode).Scan(&count); err != nil {
		return 0, fmt.Errorf("query wikidata matches: %w", err)
	}
	return count, nil
}

// CountNullFields возвращает число обогащенных строк с пустыми полями
func (r *importStatsRepository) CountNullFields(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM enriched_boundaries
		WHERE wikidata_id IS NULL
		   OR commons_category IS NULL OR commons_category = ''
		   OR name IS NULL OR name = ''
		   OR geom IS NULL
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("query null fields: %w", err)
	}
	return count, nil
}

// CountInvalidGeometries возвращает число обогащенных строк с невалидной геометрией
func (r *importStatsRepository) CountInvalidGeometries(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM enriched_boundaries
		WHERE NOT ST_IsValid(geom)
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("query invalid geometries: %w", err)
	}
	return count, nil
}
