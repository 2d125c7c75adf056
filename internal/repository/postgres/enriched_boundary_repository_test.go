package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/pkg/errors"
	"github.com/boundary-importer/internal/repository/postgres"
)

func setupMockDB(t *testing.T) (*postgres.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return postgres.NewDBForTest(sqlx.NewDb(mockDB, "sqlmock"), nil), mock
}

func enrichedRecord(wikidataID, name string) *domain.EnrichedBoundary {
	return &domain.EnrichedBoundary{
		WikidataID:      wikidataID,
		CommonsCategory: name,
		AdminLevel:      4,
		Name:            name,
		Geom:            "SRID=4326;POLYGON((0 0,1 0,1 1,0 0))",
	}
}

func TestEnrichedBoundaryRepository_UpsertBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts all records in one transaction", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewEnrichedBoundaryRepository(db, 1000)

		records := []*domain.EnrichedBoundary{
			enrichedRecord("Q240", "Brussels"),
			enrichedRecord("Q241", "Antwerp"),
		}

		mock.ExpectBegin()
		for _, rec := range records {
			mock.ExpectExec("^SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO enriched_boundaries").
				WithArgs(rec.WikidataID, rec.CommonsCategory, rec.AdminLevel, rec.Name, rec.Geom).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec("^RELEASE SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()

		result, err := repo.UpsertBatch(ctx, records)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)
		assert.Empty(t, result.Errors)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row failure is captured and does not abort the batch", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewEnrichedBoundaryRepository(db, 1000)

		records := []*domain.EnrichedBoundary{
			enrichedRecord("Q240", "Broken"),
			enrichedRecord("Q241", "Good"),
		}

		mock.ExpectBegin()
		mock.ExpectExec("^SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO enriched_boundaries").
			WillReturnError(assert.AnError)
		mock.ExpectExec("^ROLLBACK TO SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("^SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO enriched_boundaries").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("^RELEASE SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		result, err := repo.UpsertBatch(ctx, records)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Inserted)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Broken", result.Errors[0].RecordName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit failure loses the batch but is not fatal", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewEnrichedBoundaryRepository(db, 1000)

		mock.ExpectBegin()
		mock.ExpectExec("^SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO enriched_boundaries").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("^RELEASE SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit().WillReturnError(assert.AnError)

		result, err := repo.UpsertBatch(ctx, []*domain.EnrichedBoundary{enrichedRecord("Q240", "Brussels")})

		require.NoError(t, err)
		assert.Zero(t, result.Inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("splits records into separate transactions per batch", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewEnrichedBoundaryRepository(db, 1)

		records := []*domain.EnrichedBoundary{
			enrichedRecord("Q240", "Brussels"),
			enrichedRecord("Q241", "Antwerp"),
		}

		for range records {
			mock.ExpectBegin()
			mock.ExpectExec("^SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO enriched_boundaries").
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec("^RELEASE SAVEPOINT row_upsert$").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()
		}

		result, err := repo.UpsertBatch(ctx, records)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEnrichedBoundaryRepository_GetByWikidataID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the boundary", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewEnrichedBoundaryRepository(db, 1000)

		now := time.Now()
		mock.ExpectQuery("FROM enriched_boundaries").
			WithArgs("Q240").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "wikidata_id", "commons_category", "admin_level", "name", "geom", "created_at",
			}).AddRow(1, "Q240", "Brussels", 4, "Brussels", "SRID=4326;POLYGON((0 0,1 0,1 1,0 0))", now))

		boundary, err := repo.GetByWikidataID(ctx, "Q240")

		require.NoError(t, err)
		assert.Equal(t, "Q240", boundary.WikidataID)
		assert.Equal(t, "Brussels", boundary.CommonsCategory)
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewEnrichedBoundaryRepository(db, 1000)

		mock.ExpectQuery("FROM enriched_boundaries").
			WithArgs("Q999").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByWikidataID(ctx, "Q999")

		assert.ErrorIs(t, err, errors.ErrBoundaryNotFound)
	})
}

func TestEnrichedBoundaryRepository_FindByPoint(t *testing.T) {
	ctx := context.Background()

	t.Run("orders matches by admin level", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewEnrichedBoundaryRepository(db, 1000)

		now := time.Now()
		mock.ExpectQuery("ST_Contains").
			WithArgs(4.35, 50.85).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "wikidata_id", "commons_category", "admin_level", "name", "geom", "created_at",
			}).
				AddRow(1, "Q31", "Belgium", 2, "Belgium", "SRID=4326;POLYGON((0 0,1 0,1 1,0 0))", now).
				AddRow(2, "Q240", "Brussels", 4, "Brussels", "SRID=4326;POLYGON((0 0,1 0,1 1,0 0))", now))

		boundaries, err := repo.FindByPoint(ctx, 50.85, 4.35, nil)

		require.NoError(t, err)
		require.Len(t, boundaries, 2)
		assert.Equal(t, 2, boundaries[0].AdminLevel)
		assert.Equal(t, 4, boundaries[1].AdminLevel)
	})
}
