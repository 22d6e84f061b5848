package controllers

import (
	"net/http"

	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"
	"asset-system/pkg/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const imageFormField = "image"

type AssetImageController struct {
	imageService services.AssetImageServiceInterface
	logger       *zap.Logger
}

func NewAssetImageController(imageService services.AssetImageServiceInterface, logger *zap.Logger) *AssetImageController {
	return &AssetImageController{imageService: imageService, logger: logger}
}

// UploadImage expects a multipart form with the picture in the "image" field.
func (c *AssetImageController) UploadImage(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	header, err := ctx.FormFile(imageFormField)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("form field 'image' with a file is required"), c.logger)
	}
	file, err := header.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer file.Close()

	if err := validation.ValidateFile(header.Size, file, validation.AssetImage); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.imageService.SetImage(ctx.Request().Context(), id, file, header.Filename)
	if err != nil {
		c.logger.Warn("failed to store asset image", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "asset image stored", http.StatusOK)
}

func (c *AssetImageController) RemoveImage(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.imageService.RemoveImage(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "asset image removed", http.StatusOK)
}
