package services

import (
	"context"
	"io"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/repositories"
	"asset-system/pkg/filestorage"
	"asset-system/pkg/validation"
)

type AssetImageServiceInterface interface {
	SetImage(ctx context.Context, id uint64, file io.Reader, fileName string) (*dto.AssetResponseDTO, error)
	RemoveImage(ctx context.Context, id uint64) (*dto.AssetResponseDTO, error)
}

// AssetImageService keeps the asset's image_ref in step with the stored
// file. A replaced or removed image is deleted from storage on a best
// effort basis.
type AssetImageService struct {
	assetRepo repositories.AssetRepositoryInterface
	storage   filestorage.FileStorageInterface
	logger    *zap.Logger
}

func NewAssetImageService(
	assetRepo repositories.AssetRepositoryInterface,
	storage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *AssetImageService {
	return &AssetImageService{assetRepo: assetRepo, storage: storage, logger: logger}
}

func (s *AssetImageService) SetImage(ctx context.Context, id uint64, file io.Reader, fileName string) (*dto.AssetResponseDTO, error) {
	asset, err := s.assetRepo.FindAsset(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	ref, err := s.storage.Save(file, fileName, validation.AssetImage.PathPrefix)
	if err != nil {
		s.logger.Error("save asset image", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	if err := s.assetRepo.SetImageRef(ctx, nil, id, &ref); err != nil {
		s.discard(ref)
		return nil, err
	}

	if asset.ImageRef != nil && *asset.ImageRef != ref {
		s.discard(*asset.ImageRef)
	}
	s.logger.Info("asset image stored", zap.Uint64("id", id), zap.String("ref", ref))

	asset.ImageRef = &ref
	return toAssetResponseDTO(asset), nil
}

func (s *AssetImageService) RemoveImage(ctx context.Context, id uint64) (*dto.AssetResponseDTO, error) {
	asset, err := s.assetRepo.FindAsset(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if asset.ImageRef == nil {
		return toAssetResponseDTO(asset), nil
	}

	if err := s.assetRepo.SetImageRef(ctx, nil, id, nil); err != nil {
		return nil, err
	}
	s.discard(*asset.ImageRef)

	asset.ImageRef = nil
	return toAssetResponseDTO(asset), nil
}

func (s *AssetImageService) discard(ref string) {
	if err := s.storage.Delete(ref); err != nil {
		s.logger.Warn("delete stored image", zap.String("ref", ref), zap.Error(err))
	}
}
