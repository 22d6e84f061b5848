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

type OfficeController struct {
	officeService services.OfficeServiceInterface
	logger        *zap.Logger
}

func NewOfficeController(officeService services.OfficeServiceInterface, logger *zap.Logger) *OfficeController {
	return &OfficeController{officeService: officeService, logger: logger}
}

func (c *OfficeController) GetOffices(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	offices, total, err := c.officeService.GetOffices(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, offices, "offices", http.StatusOK, total)
}

func (c *OfficeController) FindOffice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	office, err := c.officeService.FindOffice(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, office, "office", http.StatusOK)
}

func (c *OfficeController) CreateOffice(ctx echo.Context) error {
	var d dto.CreateOfficeDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	office, err := c.officeService.CreateOffice(ctx.Request().Context(), d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, office, "office created", http.StatusCreated)
}

func (c *OfficeController) UpdateOffice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var d dto.UpdateOfficeDTO
	rawBody, err := bindPatch(ctx, &d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	office, err := c.officeService.UpdateOffice(ctx.Request().Context(), id, d, rawBody)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, office, "office updated", http.StatusOK)
}

func (c *OfficeController) DeleteOffice(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.officeService.DeleteOffice(ctx.Request().Context(), id); err != nil {
		c.logger.Error("failed to delete office", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}
