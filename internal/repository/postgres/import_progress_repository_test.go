package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/pkg/errors"
	"github.com/boundary-importer/internal/repository/postgres"
)

func TestImportProgressRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Start resets counters via upsert", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewImportProgressRepository(db)

		mock.ExpectExec("INSERT INTO import_progress").
			WithArgs("BEL", 4).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Start(ctx, "BEL", 4))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateLevel accumulates fetched count", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewImportProgressRepository(db)

		mock.ExpectExec("UPDATE import_progress").
			WithArgs("BEL", 6, 300).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateLevel(ctx, "BEL", 6, 300))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MarkCompleted sets completed_at and error count", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewImportProgressRepository(db)

		mock.ExpectExec("UPDATE import_progress").
			WithArgs("BEL", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkCompleted(ctx, "BEL", 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MarkFailed records the reason", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewImportProgressRepository(db)

		mock.ExpectExec("UPDATE import_progress").
			WithArgs("XKX", "overpass request failed: 429 Too Many Requests").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkFailed(ctx, "XKX", "overpass request failed: 429 Too Many Requests"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get returns the progress row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewImportProgressRepository(db)

		started := time.Now()
		completed := started.Add(time.Hour)
		mock.ExpectQuery("FROM import_progress").
			WithArgs("BEL").
			WillReturnRows(sqlmock.NewRows([]string{
				"country_code", "current_admin_level", "status", "relations_fetched",
				"errors", "started_at", "completed_at", "last_error",
			}).AddRow("BEL", 8, "completed", 2950, 0, started, completed, nil))

		progress, err := repo.Get(ctx, "BEL")

		require.NoError(t, err)
		assert.Equal(t, domain.ImportStatusCompleted, progress.Status)
		assert.Equal(t, 2950, progress.RelationsFetched)
		require.NotNil(t, progress.CompletedAt)
		assert.Nil(t, progress.LastError)
	})

	t.Run("Get without a row maps to not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewImportProgressRepository(db)

		mock.ExpectQuery("FROM import_progress").
			WithArgs("ZZZ").
			WillReturnRows(sqlmock.NewRows([]string{"country_code"}))

		_, err := repo.Get(ctx, "ZZZ")

		assert.ErrorIs(t, err, errors.ErrProgressNotFound)
	})

	t.Run("ListCompleted filters by the given catalogue", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewImportProgressRepository(db)

		catalogue := []string{"BEL", "NLD", "LUX"}
		mock.ExpectQuery("WHERE status = 'completed'").
			WithArgs(pq.Array(catalogue)).
			WillReturnRows(sqlmock.NewRows([]string{"country_code"}).
				AddRow("BEL").
				AddRow("LUX"))

		completed, err := repo.ListCompleted(ctx, catalogue)

		require.NoError(t, err)
		assert.Equal(t, []string{"BEL", "LUX"}, completed)
	})
}
