package handler

import (
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/utils"
	"github.com/center-assignment/internal/usecase"
	"github.com/center-assignment/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DistanceHandler - point to point distances, matrices and the distance cache
type DistanceHandler struct {
	distanceUC *usecase.DistanceUseCase
	logger     *zap.Logger
}

func NewDistanceHandler(distanceUC *usecase.DistanceUseCase, logger *zap.Logger) *DistanceHandler {
	return &DistanceHandler{
		distanceUC: distanceUC,
		logger:     logger,
	}
}

// GetDistance - distance between two points through the fallback chain
func (h *DistanceHandler) GetDistance(c *fiber.Ctx) error {
	var req dto.DistanceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.distanceUC.GetDistance(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetMatrix - origins x destinations distance matrix
func (h *DistanceHandler) GetMatrix(c *fiber.Ctx) error {
	var req dto.MatrixRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.distanceUC.GetMatrix(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Rows * result.Cols,
	})
}

func (h *DistanceHandler) CacheStats(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.distanceUC.CacheStats(), nil)
}

func (h *DistanceHandler) ClearCache(c *fiber.Ctx) error {
	h.distanceUC.ClearCache()
	return c.SendStatus(fiber.StatusNoContent)
}
