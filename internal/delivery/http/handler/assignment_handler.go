package handler

import (
	"context"
	"time"

	"github.com/center-assignment/internal/pkg/errors"
	"github.com/center-assignment/internal/pkg/utils"
	"github.com/center-assignment/internal/progress"
	"github.com/center-assignment/internal/usecase"
	"github.com/center-assignment/internal/usecase/dto"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssignmentHandler - assignment runs over HTTP
type AssignmentHandler struct {
	assignmentUC  *usecase.AssignmentUseCase
	logger        *zap.Logger
	timeout       time.Duration
	progressEvery int
}

func NewAssignmentHandler(
	assignmentUC *usecase.AssignmentUseCase,
	logger *zap.Logger,
	timeout time.Duration,
	progressEvery int,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentUC:  assignmentUC,
		logger:        logger,
		timeout:       timeout,
		progressEvery: progressEvery,
	}
}

// Assign godoc
// @Summary Assign people to service centers
// @Description Priority-ordered greedy assignment: pwd, then female, then male; each person takes the nearest center with free capacity
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body dto.AssignRequest true "People, centers and capacity"
// @Success 200 {object} dto.AssignResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 408 {object} utils.ErrorResponse
// @Router /api/v1/assignments [post]
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.assignmentUC.Assign(ctx, req, progress.NewLog(h.logger, h.progressEvery))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    len(result.Assignments),
		TimeMSec: result.DurationMs,
	})
}
