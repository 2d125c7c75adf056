package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/boundary-importer/internal/pkg/utils"
	"github.com/boundary-importer/internal/pkg/validator"
	"github.com/boundary-importer/internal/usecase"
	"github.com/boundary-importer/internal/usecase/dto"
)

// BoundaryHandler - обработчик запросов к обогащенным границам
type BoundaryHandler struct {
	boundaryUC *usecase.BoundaryUseCase
	logger     *zap.Logger
}

// NewBoundaryHandler - создание нового BoundaryHandler
func NewBoundaryHandler(boundaryUC *usecase.BoundaryUseCase, logger *zap.Logger) *BoundaryHandler {
	return &BoundaryHandler{
		boundaryUC: boundaryUC,
		logger:     logger,
	}
}

// ReverseGeocode - границы, содержащие точку
func (h *BoundaryHandler) ReverseGeocode(c *fiber.Ctx) error {
	var req dto.ReverseGeocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.boundaryUC.ReverseGeocode(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// GetByWikidataID - граница по идентификатору Wikidata
func (h *BoundaryHandler) GetByWikidataID(c *fiber.Ctx) error {
	result, err := h.boundaryUC.GetByWikidataID(c.Context(), c.Params("wikidata_id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
