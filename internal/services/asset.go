package services

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type AssetServiceInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]dto.AssetResponseDTO, uint64, error)
	FindAsset(ctx context.Context, id uint64) (*dto.AssetResponseDTO, error)
	CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*dto.AssetResponseDTO, error)
	UpdateAsset(ctx context.Context, id uint64, payload dto.UpdateAssetDTO, rawBody []byte) (*dto.AssetResponseDTO, error)
	DeleteAsset(ctx context.Context, id uint64) error
}

type AssetService struct {
	assetRepo repositories.AssetRepositoryInterface
	txManager repositories.TxManagerInterface
	numbers   *AssetNumberGenerator
	stats     StatsInvalidator
	logger    *zap.Logger
	now       func() time.Time
}

func NewAssetService(
	assetRepo repositories.AssetRepositoryInterface,
	txManager repositories.TxManagerInterface,
	numbers *AssetNumberGenerator,
	stats StatsInvalidator,
	logger *zap.Logger,
) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		txManager: txManager,
		numbers:   numbers,
		stats:     stats,
		logger:    logger,
		now:       time.Now,
	}
}

func toAssetResponseDTO(a *entities.Asset) *dto.AssetResponseDTO {
	if a == nil {
		return nil
	}
	return &dto.AssetResponseDTO{Asset: *a, CurrentValue: CurrentValue(a.Cost, a.Depreciation)}
}

// GetAssets lists assets. Callers without admin rights do not see assets
// awaiting deletion unless they ask for filter[is_pending] explicitly.
func (s *AssetService) GetAssets(ctx context.Context, filter types.Filter) ([]dto.AssetResponseDTO, uint64, error) {
	if !utils.IsAdminFromCtx(ctx) && !filter.Has("is_pending") {
		filter = filter.Set("is_pending", false)
	}

	assets, total, err := s.assetRepo.GetAssets(ctx, filter)
	if err != nil {
		s.logger.Error("list assets", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AssetResponseDTO, 0, len(assets))
	for i := range assets {
		result = append(result, *toAssetResponseDTO(&assets[i]))
	}
	return result, total, nil
}

func (s *AssetService) FindAsset(ctx context.Context, id uint64) (*dto.AssetResponseDTO, error) {
	asset, err := s.assetRepo.FindAsset(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return toAssetResponseDTO(asset), nil
}

func (s *AssetService) CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*dto.AssetResponseDTO, error) {
	now := s.now()
	received := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	asset := &entities.Asset{
		Name:          strings.TrimSpace(payload.Name),
		Cost:          payload.Cost,
		Invoice:       payload.Invoice,
		Category:      payload.Category,
		Specification: payload.Specification,
		ModelNumber:   payload.ModelNumber,
		ImageRef:      payload.ImageRef,
		DivisionID:    payload.DivisionID,
		ReceivedDate:  &received,
		AssetStatus:   constants.AssetStatusActive,
		UsefulLife:    constants.DefaultUsefulLifeYears,
	}
	if payload.UsefulLife != nil {
		asset.UsefulLife = *payload.UsefulLife
	}
	if payload.ManufacturedDate != nil {
		made, err := time.Parse(utils.DateLayout, *payload.ManufacturedDate)
		if err != nil {
			return nil, apperrors.Validationf("manufactured_date must be in %s format", utils.DateLayout)
		}
		asset.ManufacturedDate = &made
	}
	asset.Depreciation = ComputeDepreciation(asset.Cost, asset.ReceivedDate, asset.UsefulLife, now)

	var id uint64
	err := runWithNumberRetry(ctx, s.txManager, s.logger, func(tx pgx.Tx) error {
		asset.AssetNumber = nil
		if err := s.numbers.Assign(ctx, tx, asset); err != nil {
			return err
		}
		newID, err := s.assetRepo.CreateAsset(ctx, tx, asset)
		if err != nil {
			return err
		}
		id = newID
		return nil
	})
	if err != nil {
		s.logger.Error("create asset", zap.String("name", asset.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("asset created", zap.Uint64("id", id), zap.Stringp("asset_number", asset.AssetNumber))
	s.stats.Invalidate(ctx)
	return s.FindAsset(ctx, id)
}

// UpdateAsset applies an admin's partial update directly.
func (s *AssetService) UpdateAsset(ctx context.Context, id uint64, payload dto.UpdateAssetDTO, rawBody []byte) (*dto.AssetResponseDTO, error) {
	err := runWithNumberRetry(ctx, s.txManager, s.logger, func(tx pgx.Tx) error {
		asset, err := s.assetRepo.FindAssetForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		return patchAsset(ctx, tx, s.assetRepo, s.numbers, asset, payload, rawBody, s.now())
	})
	if err != nil {
		s.logger.Error("update asset", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("asset updated", zap.Uint64("id", id))
	s.stats.Invalidate(ctx)
	return s.FindAsset(ctx, id)
}

func (s *AssetService) DeleteAsset(ctx context.Context, id uint64) error {
	if err := s.assetRepo.DeleteAsset(ctx, nil, id); err != nil {
		s.logger.Error("delete asset", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("asset deleted", zap.Uint64("id", id))
	s.stats.Invalidate(ctx)
	return nil
}

// patchAsset applies the keys present in rawBody onto asset, recomputes
// depreciation, assigns a number if the asset still lacks one and persists.
// The number and the received date are never taken from the patch.
func patchAsset(
	ctx context.Context,
	tx pgx.Tx,
	assetRepo repositories.AssetRepositoryInterface,
	numbers *AssetNumberGenerator,
	asset *entities.Asset,
	patch dto.UpdateAssetDTO,
	rawBody []byte,
	asOf time.Time,
) error {
	number, received := asset.AssetNumber, asset.ReceivedDate
	if _, err := utils.ApplyPatch(asset, patch, rawBody); err != nil {
		return err
	}
	asset.AssetNumber, asset.ReceivedDate = number, received
	asset.Name = strings.TrimSpace(asset.Name)
	if asset.UsefulLife <= 0 {
		asset.UsefulLife = constants.DefaultUsefulLifeYears
	}

	asset.Depreciation = ComputeDepreciation(asset.Cost, asset.ReceivedDate, asset.UsefulLife, asOf)
	if err := numbers.Assign(ctx, tx, asset); err != nil {
		return err
	}
	return assetRepo.UpdateAsset(ctx, tx, asset)
}
