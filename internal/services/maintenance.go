package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type MaintenanceServiceInterface interface {
	GetMaintenances(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error)
	FindMaintenance(ctx context.Context, id uint64) (*entities.Maintenance, error)
	CreateMaintenance(ctx context.Context, payload dto.CreateMaintenanceDTO) (*entities.Maintenance, error)
	UpdateMaintenance(ctx context.Context, id uint64, payload dto.UpdateMaintenanceDTO, rawBody []byte) (*entities.Maintenance, error)
	DeleteMaintenance(ctx context.Context, id uint64) error
}

type MaintenanceService struct {
	maintenanceRepository repositories.MaintenanceRepositoryInterface
	logger                *zap.Logger
}

func NewMaintenanceService(maintenanceRepository repositories.MaintenanceRepositoryInterface, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{maintenanceRepository: maintenanceRepository, logger: logger}
}

func (s *MaintenanceService) GetMaintenances(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error) {
	list, total, err := s.maintenanceRepository.GetMaintenances(ctx, filter)
	if err != nil {
		s.logger.Error("list maintenances", zap.Error(err))
		return nil, 0, err
	}
	return list, total, nil
}

func (s *MaintenanceService) FindMaintenance(ctx context.Context, id uint64) (*entities.Maintenance, error) {
	return s.maintenanceRepository.FindMaintenance(ctx, id)
}

func (s *MaintenanceService) CreateMaintenance(ctx context.Context, payload dto.CreateMaintenanceDTO) (*entities.Maintenance, error) {
	date, err := time.Parse(utils.DateLayout, payload.Date)
	if err != nil {
		return nil, apperrors.Validationf("date must be in %s format", utils.DateLayout)
	}

	id, err := s.maintenanceRepository.CreateMaintenance(ctx, entities.Maintenance{
		Date:    date,
		Details: strings.TrimSpace(payload.Details),
		Cost:    payload.Cost,
		AssetID: payload.AssetID,
	})
	if err != nil {
		s.logger.Error("create maintenance", zap.Uint64("asset_id", payload.AssetID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("maintenance recorded", zap.Uint64("id", id), zap.Uint64("asset_id", payload.AssetID))
	return s.FindMaintenance(ctx, id)
}

func (s *MaintenanceService) UpdateMaintenance(ctx context.Context, id uint64, payload dto.UpdateMaintenanceDTO, rawBody []byte) (*entities.Maintenance, error) {
	record, err := s.maintenanceRepository.FindMaintenance(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := utils.ApplyPatch(record, payload, rawBody); err != nil {
		return nil, err
	}
	if err := s.maintenanceRepository.UpdateMaintenance(ctx, *record); err != nil {
		s.logger.Error("update maintenance", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return s.FindMaintenance(ctx, id)
}

func (s *MaintenanceService) DeleteMaintenance(ctx context.Context, id uint64) error {
	if err := s.maintenanceRepository.DeleteMaintenance(ctx, id); err != nil {
		s.logger.Error("delete maintenance", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	return nil
}
