package dto

import (
	"github.com/boundary-importer/internal/domain"
)

// ImportStatusResponse - прогресс импорта одной страны
type ImportStatusResponse struct {
	Progress *domain.ImportProgress `json:"progress"`
}

// ImportStatusListResponse - прогресс импорта всех стран
type ImportStatusListResponse struct {
	Items []*domain.ImportProgress `json:"items"`
	Total int                      `json:"total"`
}
