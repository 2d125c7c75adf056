package dto

import (
	"github.com/boundary-importer/internal/domain"
)

// ReverseGeocodeRequest - запрос обратного геокодирования
type ReverseGeocodeRequest struct {
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lon         float64 `json:"lon" validate:"min=-180,max=180"`
	AdminLevels []int   `json:"admin_levels,omitempty" validate:"omitempty,dive,min=2,max=11"`
}

// BoundaryResult - граница в ответе API
type BoundaryResult struct {
	WikidataID      string `json:"wikidata_id"`
	CommonsCategory string `json:"commons_category"`
	AdminLevel      int    `json:"admin_level"`
	Name            string `json:"name"`
}

// ReverseGeocodeResponse - ответ обратного геокодирования:
// границы, содержащие точку, от страны к районам
type ReverseGeocodeResponse struct {
	Boundaries []BoundaryResult `json:"boundaries"`
	Total      int              `json:"total"`
}

// ConvertBoundary преобразует доменную границу в результат API
func ConvertBoundary(b *domain.EnrichedBoundary) BoundaryResult {
	return BoundaryResult{
		WikidataID:      b.WikidataID,
		CommonsCategory: b.CommonsCategory,
		AdminLevel:      b.AdminLevel,
		Name:            b.Name,
	}
}
