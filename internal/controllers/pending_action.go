package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type PendingActionController struct {
	pendingService services.PendingActionServiceInterface
	logger         *zap.Logger
}

func NewPendingActionController(pendingService services.PendingActionServiceInterface, logger *zap.Logger) *PendingActionController {
	return &PendingActionController{pendingService: pendingService, logger: logger}
}

func (c *PendingActionController) SubmitDeleteRequest(ctx echo.Context) error {
	assetID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	var d dto.DeleteRequestDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	action, err := c.pendingService.SubmitDeleteRequest(ctx.Request().Context(), assetID, userID, d.Description)
	if err != nil {
		c.logger.Warn("delete request rejected", zap.Uint64("assetID", assetID), zap.Uint64("userID", userID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, action, "delete request submitted", http.StatusCreated)
}

// SubmitUpdateRequest validates the proposed changes with the same rules as a
// direct update before they are stored for review.
func (c *PendingActionController) SubmitUpdateRequest(ctx echo.Context) error {
	assetID, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	var d dto.UpdateRequestDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var changes dto.UpdateAssetDTO
	if err := json.Unmarshal(d.Payload, &changes); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("payload must be an object of asset fields"), c.logger)
	}
	if err := ctx.Validate(&changes); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	action, err := c.pendingService.SubmitUpdateRequest(ctx.Request().Context(), assetID, userID, d.Payload, d.Description)
	if err != nil {
		c.logger.Warn("update request rejected", zap.Uint64("assetID", assetID), zap.Uint64("userID", userID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, action, "update request submitted", http.StatusCreated)
}

func (c *PendingActionController) GetPendingActions(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	actions, total, err := c.pendingService.GetPendingActions(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, actions, "pending actions", http.StatusOK, total)
}

func (c *PendingActionController) FindPendingAction(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	action, err := c.pendingService.FindPendingAction(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, action, "pending action", http.StatusOK)
}

func (c *PendingActionController) Approve(ctx echo.Context) error {
	return c.resolve(ctx, services.PendingActionServiceInterface.Approve, "request approved")
}

func (c *PendingActionController) Reject(ctx echo.Context) error {
	return c.resolve(ctx, services.PendingActionServiceInterface.Reject, "request rejected")
}

// resolveFunc is a method expression, bound to the service only once the
// request has been validated.
type resolveFunc func(svc services.PendingActionServiceInterface, ctx context.Context, actionID, adminID uint64) (*dto.PendingActionResolutionDTO, error)

func (c *PendingActionController) resolve(ctx echo.Context, fn resolveFunc, message string) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	adminID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	result, err := fn(c.pendingService, ctx.Request().Context(), id, adminID)
	if err != nil {
		c.logger.Warn("pending action not resolved", zap.Uint64("actionID", id), zap.Uint64("adminID", adminID), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("pending action resolved", zap.Uint64("actionID", id), zap.String("status", result.Action.Status))
	return utils.SuccessResponse(ctx, result, message, http.StatusOK)
}
