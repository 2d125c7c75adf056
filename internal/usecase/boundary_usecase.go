package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/domain/repository"
	"github.com/boundary-importer/internal/pkg/errors"
	"github.com/boundary-importer/internal/pkg/utils"
	"github.com/boundary-importer/internal/usecase/dto"
)

// BoundaryUseCase - use case для запросов к обогащенным границам
type BoundaryUseCase struct {
	boundaryRepo repository.EnrichedBoundaryRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewBoundaryUseCase - создание нового BoundaryUseCase
func NewBoundaryUseCase(
	boundaryRepo repository.EnrichedBoundaryRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *BoundaryUseCase {
	return &BoundaryUseCase{
		boundaryRepo: boundaryRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// ReverseGeocode - границы, содержащие точку, от страны к районам
func (uc *BoundaryUseCase) ReverseGeocode(ctx context.Context, req dto.ReverseGeocodeRequest) (*dto.ReverseGeocodeResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	cacheKey := fmt.Sprintf("revgeo:%.5f:%.5f:%v", req.Lat, req.Lon, req.AdminLevels)
	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.ReverseGeocodeResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		uc.logger.Warn("Failed to unmarshal cached response", zap.String("key", cacheKey))
	}

	boundaries, err := uc.boundaryRepo.FindByPoint(ctx, req.Lat, req.Lon, req.AdminLevels)
	if err != nil {
		uc.logger.Error("Failed to reverse geocode", zap.Error(err))
		return nil, err
	}

	results := make([]dto.BoundaryResult, 0, len(boundaries))
	for _, b := range boundaries {
		results = append(results, dto.ConvertBoundary(b))
	}

	resp := &dto.ReverseGeocodeResponse{
		Boundaries: results,
		Total:      len(results),
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache response", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return resp, nil
}

// GetByWikidataID - граница по идентификатору Wikidata
func (uc *BoundaryUseCase) GetByWikidataID(ctx context.Context, wikidataID string) (*dto.BoundaryResult, error) {
	if !domain.WikidataIDPattern.MatchString(wikidataID) {
		return nil, errors.ErrInvalidWikidataID
	}

	boundary, err := uc.boundaryRepo.GetByWikidataID(ctx, wikidataID)
	if err != nil {
		return nil, err
	}

	result := dto.ConvertBoundary(boundary)
	return &result, nil
}
