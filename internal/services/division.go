package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type DivisionServiceInterface interface {
	GetDivisions(ctx context.Context, filter types.Filter) ([]entities.Division, uint64, error)
	FindDivision(ctx context.Context, id uint64) (*entities.Division, error)
	CreateDivision(ctx context.Context, payload dto.CreateDivisionDTO) (*entities.Division, error)
	UpdateDivision(ctx context.Context, id uint64, payload dto.UpdateDivisionDTO, rawBody []byte) (*entities.Division, error)
	DeleteDivision(ctx context.Context, id uint64) error
}

type DivisionService struct {
	divisionRepository repositories.DivisionRepositoryInterface
	stats              StatsInvalidator
	logger             *zap.Logger
}

func NewDivisionService(divisionRepository repositories.DivisionRepositoryInterface, stats StatsInvalidator, logger *zap.Logger) *DivisionService {
	return &DivisionService{divisionRepository: divisionRepository, stats: stats, logger: logger}
}

func (s *DivisionService) GetDivisions(ctx context.Context, filter types.Filter) ([]entities.Division, uint64, error) {
	divisions, total, err := s.divisionRepository.GetDivisions(ctx, filter)
	if err != nil {
		s.logger.Error("list divisions", zap.Error(err))
		return nil, 0, err
	}
	return divisions, total, nil
}

func (s *DivisionService) FindDivision(ctx context.Context, id uint64) (*entities.Division, error) {
	return s.divisionRepository.FindDivision(ctx, nil, id)
}

func (s *DivisionService) CreateDivision(ctx context.Context, payload dto.CreateDivisionDTO) (*entities.Division, error) {
	id, err := s.divisionRepository.CreateDivision(ctx, entities.Division{
		Name:           strings.TrimSpace(payload.Name),
		HeadOfDivision: strings.TrimSpace(payload.HeadOfDivision),
		OfficeID:       payload.OfficeID,
	})
	if err != nil {
		s.logger.Error("create division", zap.Error(err))
		return nil, err
	}
	s.logger.Info("division created", zap.Uint64("id", id))
	return s.FindDivision(ctx, id)
}

// UpdateDivision does not touch asset numbers already issued under the old
// name; only assets numbered later pick up a new division code.
func (s *DivisionService) UpdateDivision(ctx context.Context, id uint64, payload dto.UpdateDivisionDTO, rawBody []byte) (*entities.Division, error) {
	division, err := s.divisionRepository.FindDivision(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if _, err := utils.ApplyPatch(division, payload, rawBody); err != nil {
		return nil, err
	}
	division.Name = strings.TrimSpace(division.Name)
	if err := s.divisionRepository.UpdateDivision(ctx, *division); err != nil {
		s.logger.Error("update division", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("division updated", zap.Uint64("id", id))
	return s.FindDivision(ctx, id)
}

// DeleteDivision keeps the division's assets, unassigned.
func (s *DivisionService) DeleteDivision(ctx context.Context, id uint64) error {
	if err := s.divisionRepository.DeleteDivision(ctx, id); err != nil {
		s.logger.Error("delete division", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("division deleted", zap.Uint64("id", id))
	s.stats.Invalidate(ctx)
	return nil
}
