package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/boundary-importer/internal/pkg/utils"
	"github.com/boundary-importer/internal/usecase"
)

// ImportStatusHandler - обработчик запросов к прогрессу импорта
type ImportStatusHandler struct {
	importStatusUC *usecase.ImportStatusUseCase
	logger         *zap.Logger
}

// NewImportStatusHandler - создание нового ImportStatusHandler
func NewImportStatusHandler(importStatusUC *usecase.ImportStatusUseCase, logger *zap.Logger) *ImportStatusHandler {
	return &ImportStatusHandler{
		importStatusUC: importStatusUC,
		logger:         logger,
	}
}

// List - прогресс импорта всех стран
func (h *ImportStatusHandler) List(c *fiber.Ctx) error {
	result, err := h.importStatusUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// Get - прогресс импорта одной страны
func (h *ImportStatusHandler) Get(c *fiber.Ctx) error {
	countryCode := strings.ToUpper(c.Params("country"))

	result, err := h.importStatusUC.Get(c.Context(), countryCode)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
