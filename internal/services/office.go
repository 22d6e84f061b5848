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

type OfficeServiceInterface interface {
	GetOffices(ctx context.Context, filter types.Filter) ([]entities.Office, uint64, error)
	FindOffice(ctx context.Context, id uint64) (*entities.Office, error)
	CreateOffice(ctx context.Context, payload dto.CreateOfficeDTO) (*entities.Office, error)
	UpdateOffice(ctx context.Context, id uint64, payload dto.UpdateOfficeDTO, rawBody []byte) (*entities.Office, error)
	DeleteOffice(ctx context.Context, id uint64) error
}

type OfficeService struct {
	officeRepository repositories.OfficeRepositoryInterface
	stats            StatsInvalidator
	logger           *zap.Logger
}

func NewOfficeService(officeRepository repositories.OfficeRepositoryInterface, stats StatsInvalidator, logger *zap.Logger) *OfficeService {
	return &OfficeService{
		officeRepository: officeRepository,
		stats:            stats,
		logger:           logger,
	}
}

func (s *OfficeService) GetOffices(ctx context.Context, filter types.Filter) ([]entities.Office, uint64, error) {
	offices, total, err := s.officeRepository.GetOffices(ctx, filter)
	if err != nil {
		s.logger.Error("list offices", zap.Error(err))
		return nil, 0, err
	}
	return offices, total, nil
}

func (s *OfficeService) FindOffice(ctx context.Context, id uint64) (*entities.Office, error) {
	return s.officeRepository.FindOffice(ctx, id)
}

func (s *OfficeService) CreateOffice(ctx context.Context, payload dto.CreateOfficeDTO) (*entities.Office, error) {
	office, err := s.officeRepository.CreateOffice(ctx, entities.Office{
		Name:     strings.TrimSpace(payload.Name),
		Location: strings.TrimSpace(payload.Location),
	})
	if err != nil {
		s.logger.Error("create office", zap.Error(err))
		return nil, err
	}
	s.logger.Info("office created", zap.Uint64("id", office.ID))
	return office, nil
}

func (s *OfficeService) UpdateOffice(ctx context.Context, id uint64, payload dto.UpdateOfficeDTO, rawBody []byte) (*entities.Office, error) {
	office, err := s.officeRepository.FindOffice(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := utils.ApplyPatch(office, payload, rawBody); err != nil {
		return nil, err
	}
	updated, err := s.officeRepository.UpdateOffice(ctx, *office)
	if err != nil {
		s.logger.Error("update office", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	s.logger.Info("office updated", zap.Uint64("id", id))
	return updated, nil
}

// DeleteOffice also removes the office's divisions; their assets stay,
// without a division.
func (s *OfficeService) DeleteOffice(ctx context.Context, id uint64) error {
	if err := s.officeRepository.DeleteOffice(ctx, id); err != nil {
		s.logger.Error("delete office", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("office deleted", zap.Uint64("id", id))
	s.stats.Invalidate(ctx)
	return nil
}
