package handler

import (
	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/utils"
	"github.com/center-assignment/internal/usecase"
	"github.com/center-assignment/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GraphHandler - Dijkstra queries over request supplied graphs
type GraphHandler struct {
	graphUC *usecase.GraphUseCase
	logger  *zap.Logger
}

func NewGraphHandler(graphUC *usecase.GraphUseCase, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		graphUC: graphUC,
		logger:  logger,
	}
}

func (h *GraphHandler) ShortestPath(c *fiber.Ctx) error {
	var req dto.ShortestPathRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.graphUC.ShortestPath(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

func (h *GraphHandler) Distances(c *fiber.Ctx) error {
	var req dto.GraphDistancesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	result, err := h.graphUC.Distances(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Distances),
	})
}
