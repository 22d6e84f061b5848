package controllers

import (
	"net/http"
	"time"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AssetController struct {
	assetService  services.AssetServiceInterface
	statsService  services.AssetStatsServiceInterface
	exportService services.AssetExportServiceInterface
	evaluator     services.AssetStatusEvaluatorInterface
	logger        *zap.Logger
}

func NewAssetController(
	assetService services.AssetServiceInterface,
	statsService services.AssetStatsServiceInterface,
	exportService services.AssetExportServiceInterface,
	evaluator services.AssetStatusEvaluatorInterface,
	logger *zap.Logger,
) *AssetController {
	return &AssetController{
		assetService:  assetService,
		statsService:  statsService,
		exportService: exportService,
		evaluator:     evaluator,
		logger:        logger,
	}
}

func (c *AssetController) GetAssets(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	assets, total, err := c.assetService.GetAssets(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, assets, "assets", http.StatusOK, total)
}

func (c *AssetController) FindAsset(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.FindAsset(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "asset", http.StatusOK)
}

func (c *AssetController) CreateAsset(ctx echo.Context) error {
	var d dto.CreateAssetDTO
	if err := ctx.Bind(&d); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("invalid request body"), c.logger)
	}
	if err := ctx.Validate(&d); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.CreateAsset(ctx.Request().Context(), d)
	if err != nil {
		c.logger.Warn("failed to create asset", zap.String("name", d.Name), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "asset created", http.StatusCreated)
}

func (c *AssetController) UpdateAsset(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var d dto.UpdateAssetDTO
	rawBody, err := bindPatch(ctx, &d)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	asset, err := c.assetService.UpdateAsset(ctx.Request().Context(), id, d, rawBody)
	if err != nil {
		c.logger.Warn("failed to update asset", zap.Uint64("id", id), zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, asset, "asset updated", http.StatusOK)
}

func (c *AssetController) DeleteAsset(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.assetService.DeleteAsset(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (c *AssetController) GetStats(ctx echo.Context) error {
	stats, err := c.statsService.GetStats(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "asset stats", http.StatusOK)
}

func (c *AssetController) GetCategoryDistribution(ctx echo.Context) error {
	distribution, err := c.statsService.GetCategoryDistribution(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, distribution, "category distribution", http.StatusOK)
}

// ExportAssets streams the register for the same filters as GetAssets.
func (c *AssetController) ExportAssets(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.QueryParams())

	f, err := c.exportService.Export(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("asset export failed", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	defer f.Close()

	fileName := services.ExportFileName(time.Now())
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *AssetController) EvaluateStatus(ctx echo.Context) error {
	n, err := c.evaluator.EvaluateAll(ctx.Request().Context(), time.Now())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.EvaluateStatusResponseDTO{Updated: n}, "status sweep finished", http.StatusOK)
}
