package controllers

import (
	"net/http"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DivisionController struct {
	divisionService services.DivisionServiceInterface
	logger        *zap.Logger
}

func NewDivisionController(divisionService services.DivisionServiceInterface, logger *zap.Logger) *DivisionController {
	return &DivisionController{divisionService: divisionService, logger: logger}
}

func (c *DivisionController) GetDivisions(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	divisions, total, err := c.divisionService.GetDivisions(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, divisions, "divisions", http.StatusOK, total)
}

func (c *DivisionController) FindDivision(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	division, err := c.divisionService.FindDivision(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, division, "division", http.StatusOK)
}

func (c *DivisionController) CreateDivision(ctx echo.Context) error {
	var d dto.CreateDivisionDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	division, err := c.divisionService.CreateDivision(ctx.Request().Context(), d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, division, "division created", http.StatusCreated)
}

func (c *DivisionController) UpdateDivision(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var d dto.UpdateDivisionDTO
	rawBody, err := bindPatch(ctx, &d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	division, err := c.divisionService.UpdateDivision(ctx.Request().Context(), id, d, rawBody)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, division, "division updated", http.StatusOK)
}

func (c *DivisionController) DeleteDivision(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.divisionService.DeleteDivision(ctx.Request().Context(), id); err != nil {
		c.logger.Error("failed to delete division", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}
