package controllers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/types"
)

type MockAssetService struct{ mock.Mock }

func (m *MockAssetService) GetAssets(ctx context.Context, filter types.Filter) ([]dto.AssetResponseDTO, uint64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]dto.AssetResponseDTO)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockAssetService) FindAsset(ctx context.Context, id uint64) (*dto.AssetResponseDTO, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.AssetResponseDTO)
	return res, args.Error(1)
}

func (m *MockAssetService) CreateAsset(ctx context.Context, payload dto.CreateAssetDTO) (*dto.AssetResponseDTO, error) {
	args := m.Called(ctx, payload)
	res, _ := args.Get(0).(*dto.AssetResponseDTO)
	return res, args.Error(1)
}

func (m *MockAssetService) UpdateAsset(ctx context.Context, id uint64, payload dto.UpdateAssetDTO, rawBody []byte) (*dto.AssetResponseDTO, error) {
	args := m.Called(ctx, id, payload, rawBody)
	res, _ := args.Get(0).(*dto.AssetResponseDTO)
	return res, args.Error(1)
}

func (m *MockAssetService) DeleteAsset(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockStatsService struct{ mock.Mock }

func (m *MockStatsService) GetStats(ctx context.Context) (*entities.AssetStats, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*entities.AssetStats)
	return res, args.Error(1)
}

func (m *MockStatsService) GetCategoryDistribution(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(map[string]int64)
	return res, args.Error(1)
}

func (m *MockStatsService) Invalidate(ctx context.Context) { m.Called(ctx) }

type MockExportService struct{ mock.Mock }

func (m *MockExportService) Export(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).(*excelize.File)
	return res, args.Error(1)
}

type MockEvaluator struct{ mock.Mock }

func (m *MockEvaluator) EvaluateAll(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockPendingActionService struct{ mock.Mock }

func (m *MockPendingActionService) SubmitDeleteRequest(ctx context.Context, assetID, requesterID uint64, description string) (*entities.PendingAction, error) {
	args := m.Called(ctx, assetID, requesterID, description)
	res, _ := args.Get(0).(*entities.PendingAction)
	return res, args.Error(1)
}

func (m *MockPendingActionService) SubmitUpdateRequest(ctx context.Context, assetID, requesterID uint64, payload json.RawMessage, description string) (*entities.PendingAction, error) {
	args := m.Called(ctx, assetID, requesterID, payload, description)
	res, _ := args.Get(0).(*entities.PendingAction)
	return res, args.Error(1)
}

func (m *MockPendingActionService) Approve(ctx context.Context, actionID, adminID uint64) (*dto.PendingActionResolutionDTO, error) {
	args := m.Called(ctx, actionID, adminID)
	res, _ := args.Get(0).(*dto.PendingActionResolutionDTO)
	return res, args.Error(1)
}

func (m *MockPendingActionService) Reject(ctx context.Context, actionID, adminID uint64) (*dto.PendingActionResolutionDTO, error) {
	args := m.Called(ctx, actionID, adminID)
	res, _ := args.Get(0).(*dto.PendingActionResolutionDTO)
	return res, args.Error(1)
}

func (m *MockPendingActionService) GetPendingActions(ctx context.Context, filter types.Filter) ([]entities.PendingAction, uint64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]entities.PendingAction)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockPendingActionService) FindPendingAction(ctx context.Context, id uint64) (*entities.PendingAction, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*entities.PendingAction)
	return res, args.Error(1)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, payload dto.LoginDTO) (*entities.User, error) {
	args := m.Called(ctx, payload)
	res, _ := args.Get(0).(*entities.User)
	return res, args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*entities.User)
	return res, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}
