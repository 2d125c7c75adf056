package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain/repository"
	"github.com/boundary-importer/internal/pkg/errors"
	"github.com/boundary-importer/internal/usecase/dto"
)

// ImportStatusUseCase - use case для чтения прогресса импорта
type ImportStatusUseCase struct {
	progressRepo repository.ImportProgressRepository
	logger       *zap.Logger
}

// NewImportStatusUseCase - создание нового ImportStatusUseCase
func NewImportStatusUseCase(progressRepo repository.ImportProgressRepository, logger *zap.Logger) *ImportStatusUseCase {
	return &ImportStatusUseCase{
		progressRepo: progressRepo,
		logger:       logger,
	}
}

// List - прогресс импорта всех стран
func (uc *ImportStatusUseCase) List(ctx context.Context) (*dto.ImportStatusListResponse, error) {
	items, err := uc.progressRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list import progress", zap.Error(err))
		return nil, err
	}

	return &dto.ImportStatusListResponse{
		Items: items,
		Total: len(items),
	}, nil
}

// Get - прогресс импорта одной страны
func (uc *ImportStatusUseCase) Get(ctx context.Context, countryCode string) (*dto.ImportStatusResponse, error) {
	if len(countryCode) != 3 {
		return nil, errors.ErrInvalidCountryCode
	}

	progress, err := uc.progressRepo.Get(ctx, countryCode)
	if err != nil {
		return nil, err
	}

	return &dto.ImportStatusResponse{Progress: progress}, nil
}
