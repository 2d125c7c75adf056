package importer_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/boundary-importer/internal/domain"
)

// MockOverpassRepository is a mock of OverpassRepository
type MockOverpassRepository struct {
	mock.Mock
}

func (m *MockOverpassRepository) FetchCountryRelationIDs(ctx context.Context, iso3 string, level int) ([]int64, error) {
	args := m.Called(ctx, iso3, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockOverpassRepository) FetchChildRelationIDs(ctx context.Context, parentID int64, level int) ([]int64, error) {
	args := m.Called(ctx, parentID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockOverpassRepository) FetchGeometry(ctx context.Context, ids []int64) (*domain.OSMGeometryBatch, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OSMGeometryBatch), args.Error(1)
}

// MockWikidataRepository is a mock of WikidataRepository
type MockWikidataRepository struct {
	mock.Mock
}

func (m *MockWikidataRepository) FetchCommonsCategories(ctx context.Context, ids []string) (map[string]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockRawRelationRepository is a mock of RawRelationRepository
type MockRawRelationRepository struct {
	mock.Mock
}

func (m *MockRawRelationRepository) UpsertBatch(ctx context.Context, relations []*domain.RawRelation) (int, error) {
	args := m.Called(ctx, relations)
	return args.Int(0), args.Error(1)
}

func (m *MockRawRelationRepository) ListByCountry(ctx context.Context, countryCode string) ([]*domain.RawRelation, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RawRelation), args.Error(1)
}

// MockEnrichedBoundaryRepository is a mock of EnrichedBoundaryRepository
type MockEnrichedBoundaryRepository struct {
	mock.Mock
}

func (m *MockEnrichedBoundaryRepository) UpsertBatch(ctx context.Context, records []*domain.EnrichedBoundary) (*domain.PersistResult, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PersistResult), args.Error(1)
}

func (m *MockEnrichedBoundaryRepository) GetByWikidataID(ctx context.Context, wikidataID string) (*domain.EnrichedBoundary, error) {
	args := m.Called(ctx, wikidataID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrichedBoundary), args.Error(1)
}

func (m *MockEnrichedBoundaryRepository) FindByPoint(ctx context.Context, lat, lon float64, adminLevels []int) ([]*domain.EnrichedBoundary, error) {
	args := m.Called(ctx, lat, lon, adminLevels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.EnrichedBoundary), args.Error(1)
}

// MockImportProgressRepository is a mock of ImportProgressRepository
type MockImportProgressRepository struct {
	mock.Mock
}

func (m *MockImportProgressRepository) Start(ctx context.Context, countryCode string, minLevel int) error {
	args := m.Called(ctx, countryCode, minLevel)
	return args.Error(0)
}

func (m *MockImportProgressRepository) UpdateLevel(ctx context.Context, countryCode string, level, fetched int) error {
	args := m.Called(ctx, countryCode, level, fetched)
	return args.Error(0)
}

func (m *MockImportProgressRepository) MarkCompleted(ctx context.Context, countryCode string, errs int) error {
	args := m.Called(ctx, countryCode, errs)
	return args.Error(0)
}

func (m *MockImportProgressRepository) MarkFailed(ctx context.Context, countryCode string, reason string) error {
	args := m.Called(ctx, countryCode, reason)
	return args.Error(0)
}

func (m *MockImportProgressRepository) Get(ctx context.Context, countryCode string) (*domain.ImportProgress, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportProgress), args.Error(1)
}

func (m *MockImportProgressRepository) List(ctx context.Context) ([]*domain.ImportProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ImportProgress), args.Error(1)
}

func (m *MockImportProgressRepository) ListCompleted(ctx context.Context, countryCodes []string) ([]string, error) {
	args := m.Called(ctx, countryCodes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockImportStatsRepository is a mock of ImportStatsRepository
type MockImportStatsRepository struct {
	mock.Mock
}

func (m *MockImportStatsRepository) CountRawByLevel(ctx context.Context, countryCode string) (map[int]int, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int), args.Error(1)
}

func (m *MockImportStatsRepository) CountWikidataMatches(ctx context.Context, countryCode string) (int, error) {
	args := m.Called(ctx, countryCode)
	return args.Int(0), args.Error(1)
}

func (m *MockImportStatsRepository) CountNullFields(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockImportStatsRepository) CountInvalidGeometries(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
