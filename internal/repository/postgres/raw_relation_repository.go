package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/domain/repository"
)

type rawRelationRepository struct {
	db        *sqlx.DB
	batchSize int
	logger    *zap.Logger
}

// NewRawRelationRepository создает новый экземпляр RawRelationRepository
func NewRawRelationRepository(db *DB, batchSize int) repository.RawRelationRepository {
	return &rawRelationRepository{
		db:        db.DB,
		batchSize: batchSize,
		logger:    db.logger,
	}
}

// UpsertBatch сохраняет relations чанками в отдельных транзакциях.
// Ошибка любого чанка прерывает сохранение: уровень не должен выглядеть
// полностью сохраненным, если часть строк потеряна.
func (r *rawRelationRepository) UpsertBatch(ctx context.Context, relations []*domain.RawRelation) (int, error) {
	query := `
		INSERT INTO osm_boundary_relations
			(relation_id, country_code, admin_level, name, wikidata_id, geometry, tags, fetched_at)
		VALUES ($1, $2, $3, $4, $5, ST_GeomFromEWKT($6), $7, $8)
		ON CONFLICT (relation_id, country_code) DO UPDATE SET
			admin_level = EXCLUDED.admin_level,
			name = EXCLUDED.name,
			wikidata_id = EXCLUDED.wikidata_id,
			geometry = EXCLUDED.geometry,
			tags = EXCLUDED.tags,
			fetched_at = EXCLUDED.fetched_at
	`

	total := 0
	for start := 0; start < len(relations); start += r.batchSize {
		end := start + r.batchSize
		if end > len(relations) {
			end = len(relations)
		}

		if err := r.upsertChunk(ctx, query, relations[start:end]); err != nil {
			return total, err
		}
		total += end - start
	}

	return total, nil
}

func (r *rawRelationRepository) upsertChunk(ctx context.Context, query string, relations []*domain.RawRelation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, rel := range relations {
		tags, err := json.Marshal(rel.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags for relation %d: %w", rel.RelationID, err)
		}

		_, err = tx.ExecContext(ctx, query,
			rel.RelationID,
			rel.CountryCode,
			rel.AdminLevel,
			rel.Name,
			rel.WikidataID,
			rel.Geometry,
			tags,
			rel.FetchedAt,
		)
		if err != nil {
			r.logger.Error("Failed to upsert raw relation",
				zap.Int64("relation_id", rel.RelationID),
				zap.Error(err))
			return fmt.Errorf("failed to upsert relation %d: %w", rel.RelationID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit raw relations: %w", err)
	}
	return nil
}

// ListByCountry возвращает relations страны в порядке admin_level ASC, name ASC.
// Этот порядок фиксирует, какая строка выживает при дедупликации по wikidata_id.
func (r *rawRelationRepository) ListByCountry(ctx context.Context, countryCode string) ([]*domain.RawRelation, error) {
	query := `
		SELECT
			id, relation_id, country_code, admin_level, name,
			wikidata_id, ST_AsEWKT(geometry) as geometry, tags, fetched_at
		FROM osm_boundary_relations
		WHERE country_code = $1
		ORDER BY admin_level ASC, name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, countryCode)
	if err != nil {
		r.logger.Error("Failed to list raw relations",
			zap.String("country", countryCode),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list relations for %s: %w", countryCode, err)
	}
	defer rows.Close()

	var relations []*domain.RawRelation
	for rows.Next() {
		var rel domain.RawRelation
		var tags []byte

		err := rows.Scan(
			&rel.ID, &rel.RelationID, &rel.CountryCode, &rel.AdminLevel, &rel.Name,
			&rel.WikidataID, &rel.Geometry, &tags, &rel.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan relation row: %w", err)
		}

		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &rel.Tags); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tags for relation %d: %w", rel.RelationID, err)
			}
		}

		relations = append(relations, &rel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("relation rows error: %w", err)
	}

	return relations, nil
}
