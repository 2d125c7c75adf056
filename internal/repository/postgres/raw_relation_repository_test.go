package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/repository/postgres"
)

func TestRawRelationRepository_UpsertBatch(t *testing.T) {
	ctx := context.Background()

	wikidataID := "Q240"
	relation := &domain.RawRelation{
		RelationID:  54094,
		CountryCode: "BEL",
		AdminLevel:  4,
		Name:        "Brussels",
		WikidataID:  &wikidataID,
		Geometry:    "SRID=4326;POLYGON((0 0,1 0,1 1,0 0))",
		Tags:        map[string]string{"boundary": "administrative"},
		FetchedAt:   time.Now().UTC(),
	}

	t.Run("upserts rows inside a transaction", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewRawRelationRepository(db, 1000)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO osm_boundary_relations").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		n, err := repo.UpsertBatch(ctx, []*domain.RawRelation{relation})

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row failure rolls back and aborts", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewRawRelationRepository(db, 1000)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO osm_boundary_relations").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		n, err := repo.UpsertBatch(ctx, []*domain.RawRelation{relation})

		require.Error(t, err)
		assert.Zero(t, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRawRelationRepository_ListByCountry(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows ordered by level and name", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := postgres.NewRawRelationRepository(db, 1000)

		now := time.Now()
		mock.ExpectQuery("FROM osm_boundary_relations").
			WithArgs("BEL").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "relation_id", "country_code", "admin_level", "name",
				"wikidata_id", "geometry", "tags", "fetched_at",
			}).
				AddRow(1, 54094, "BEL", 4, "Brussels", "Q240",
					"SRID=4326;POLYGON((0 0,1 0,1 1,0 0))", []byte(`{"boundary":"administrative"}`), now).
				AddRow(2, 90348, "BEL", 6, "Antwerp", nil,
					"SRID=4326;POLYGON((0 0,1 0,1 1,0 0))", []byte(`{}`), now))

		relations, err := repo.ListByCountry(ctx, "BEL")

		require.NoError(t, err)
		require.Len(t, relations, 2)
		assert.Equal(t, "Brussels", relations[0].Name)
		require.NotNil(t, relations[0].WikidataID)
		assert.Equal(t, "Q240", *relations[0].WikidataID)
		assert.Equal(t, "administrative", relations[0].Tags["boundary"])
		assert.Nil(t, relations[1].WikidataID)
	})
}
