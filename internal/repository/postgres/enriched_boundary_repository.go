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

type enrichedBoundaryRepository struct {
	db        *sqlx.DB
	batchSize int
	logger    *zap.Logger
}

// NewEnrichedBoundaryRepository создает новый экземпляр EnrichedBoundaryRepository
func NewEnrichedBoundaryRepository(db *DB, batchSize int) repository.EnrichedBoundaryRepository {
	return &enrichedBoundaryRepository{
		db:        db.DB,
		batchSize: batchSize,
		logger:    db.logger,
	}
}

// UpsertBatch апсертит записи батчами, транзакция на батч.
// Строка с ошибкой откатывается до savepoint и не прерывает батч;
// сбой коммита откатывает батч целиком, обработка продолжается.
func (r *enrichedBoundaryRepository) UpsertBatch(ctx context.Context, records []*domain.EnrichedBoundary) (*domain.PersistResult, error) {
	result := &domain.PersistResult{}

	for start := 0; start < len(records); start += r.batchSize {
		end := start + r.batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := ctx.Err(); err != nil {
			return result, err
		}

		r.upsertChunk(ctx, records[start:end], result)
	}

	return result, nil
}

func (r *enrichedBoundaryRepository) upsertChunk(ctx context.Context, records []*domain.EnrichedBoundary, result *domain.PersistResult) {
	query := `
		INSERT INTO enriched_boundaries
			(wikidata_id, commons_category, admin_level, name, geom)
		VALUES ($1, $2, $3, $4, ST_GeomFromEWKT($5))
		ON CONFLICT (wikidata_id) DO UPDATE SET
			commons_category = EXCLUDED.commons_category,
			admin_level = EXCLUDED.admin_level,
			name = EXCLUDED.name,
			geom = EXCLUDED.geom
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin enriched batch transaction", zap.Error(err))
		for _, rec := range records {
			result.Errors = append(result.Errors, domain.RecordError{
				RecordName: rec.Name,
				Error:      err.Error(),
			})
		}
		return
	}
	defer tx.Rollback()

	inserted := 0
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, "SAVEPOINT row_upsert"); err != nil {
			result.Errors = append(result.Errors, domain.RecordError{
				RecordName: rec.Name,
				Error:      err.Error(),
			})
			continue
		}

		_, err := tx.ExecContext(ctx, query,
			rec.WikidataID,
			rec.CommonsCategory,
			rec.AdminLevel,
			rec.Name,
			rec.Geom,
		)
		if err != nil {
			result.Errors = append(result.Errors, domain.RecordError{
				RecordName: rec.Name,
				Error:      err.Error(),
			})
			// откат до savepoint сохраняет транзакцию живой для остальных строк
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT row_upsert"); rbErr != nil {
				r.logger.Error("Failed to roll back to savepoint", zap.Error(rbErr))
				return
			}
			continue
		}

		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT row_upsert"); err != nil {
			r.logger.Error("Failed to release savepoint", zap.Error(err))
			return
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit enriched batch, rows lost",
			zap.Int("rows", inserted),
			zap.Error(err))
		return
	}

	result.Inserted += inserted
}

// GetByWikidataID возвращает границу по wikidata_id
func (r *enrichedBoundaryRepository) GetByWikidataID(ctx context.Context, wikidataID string) (*domain.EnrichedBoundary, error) {
	query := `
		SELECT
			id, wikidata_id, commons_category, admin_level, name,
			ST_AsEWKT(geom) as geom, created_at
		FROM enriched_boundaries
		WHERE wikidata_id = $1
	`

	var boundary domain.EnrichedBoundary
	err := r.db.QueryRowContext(ctx, query, wikidataID).Scan(
		&boundary.ID, &boundary.WikidataID, &boundary.CommonsCategory,
		&boundary.AdminLevel, &boundary.Name, &boundary.Geom, &boundary.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrBoundaryNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get boundary by wikidata id",
			zap.String("wikidata_id", wikidataID),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &boundary, nil
}

// FindByPoint возвращает границы, содержащие точку, по возрастанию admin_level
func (r *enrichedBoundaryRepository) FindByPoint(ctx context.Context, lat, lon float64, adminLevels []int) ([]*domain.EnrichedBoundary, error) {
	query := `
		SELECT
			id, wikidata_id, commons_category, admin_level, name,
			ST_AsEWKT(geom) as geom, created_at
		FROM enriched_boundaries
		WHERE ST_Contains(geom, ST_SetSRID(ST_MakePoint($1, $2), 4326))
	`
	args := []interface{}{lon, lat}

	if len(adminLevels) > 0 {
		query += " AND admin_level = ANY($3)"
		args = append(args, pq.Array(adminLevels))
	}

	query += " ORDER BY admin_level ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to find boundaries by point",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	var boundaries []*domain.EnrichedBoundary
	for rows.Next() {
		var boundary domain.EnrichedBoundary
		err := rows.Scan(
			&boundary.ID, &boundary.WikidataID, &boundary.CommonsCategory,
			&boundary.AdminLevel, &boundary.Name, &boundary.Geom, &boundary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan boundary row: %w", err)
		}
		boundaries = append(boundaries, &boundary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("boundary rows error: %w", err)
	}

	return boundaries, nil
}
