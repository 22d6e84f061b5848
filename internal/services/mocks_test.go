package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"asset-system/internal/entities"
	"asset-system/pkg/types"
)

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetAssets(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]entities.Asset)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockAssetRepository) FindAsset(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error) {
	args := m.Called(ctx, tx, id)
	a, _ := args.Get(0).(*entities.Asset)
	return a, args.Error(1)
}

func (m *MockAssetRepository) FindAssetForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error) {
	args := m.Called(ctx, tx, id)
	a, _ := args.Get(0).(*entities.Asset)
	return a, args.Error(1)
}

func (m *MockAssetRepository) CreateAsset(ctx context.Context, tx pgx.Tx, asset *entities.Asset) (uint64, error) {
	args := m.Called(ctx, tx, asset)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, tx pgx.Tx, asset *entities.Asset) error {
	return m.Called(ctx, tx, asset).Error(0)
}

func (m *MockAssetRepository) SetRequestState(ctx context.Context, tx pgx.Tx, id uint64, isPending, isUpdated bool, description *string) error {
	return m.Called(ctx, tx, id, isPending, isUpdated, description).Error(0)
}

func (m *MockAssetRepository) SetImageRef(ctx context.Context, tx pgx.Tx, id uint64, ref *string) error {
	return m.Called(ctx, tx, id, ref).Error(0)
}

func (m *MockAssetRepository) DeleteAsset(ctx context.Context, tx pgx.Tx, id uint64) error {
	return m.Called(ctx, tx, id).Error(0)
}

func (m *MockAssetRepository) LockNumberPrefix(ctx context.Context, tx pgx.Tx, prefix string) error {
	return m.Called(ctx, tx, prefix).Error(0)
}

func (m *MockAssetRepository) MaxAssetSequence(ctx context.Context, tx pgx.Tx, prefix string) (int, error) {
	args := m.Called(ctx, tx, prefix)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetRepository) MarkStaleAssets(ctx context.Context, receivedBefore time.Time) (int64, error) {
	args := m.Called(ctx, receivedBefore)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) GetStats(ctx context.Context) (*entities.AssetStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*entities.AssetStats)
	return s, args.Error(1)
}

func (m *MockAssetRepository) GetCategoryDistribution(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).(map[string]int64)
	return d, args.Error(1)
}

type MockDivisionRepository struct {
	mock.Mock
}

func (m *MockDivisionRepository) GetDivisions(ctx context.Context, filter types.Filter) ([]entities.Division, uint64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]entities.Division)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockDivisionRepository) FindDivision(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Division, error) {
	args := m.Called(ctx, tx, id)
	d, _ := args.Get(0).(*entities.Division)
	return d, args.Error(1)
}

func (m *MockDivisionRepository) CreateDivision(ctx context.Context, division entities.Division) (uint64, error) {
	args := m.Called(ctx, division)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockDivisionRepository) UpdateDivision(ctx context.Context, division entities.Division) error {
	return m.Called(ctx, division).Error(0)
}

func (m *MockDivisionRepository) DeleteDivision(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPendingActionRepository struct {
	mock.Mock
}

func (m *MockPendingActionRepository) GetPendingActions(ctx context.Context, filter types.Filter, requestedBy *uint64) ([]entities.PendingAction, uint64, error) {
	args := m.Called(ctx, filter, requestedBy)
	list, _ := args.Get(0).([]entities.PendingAction)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockPendingActionRepository) FindPendingAction(ctx context.Context, tx pgx.Tx, id uint64) (*entities.PendingAction, error) {
	args := m.Called(ctx, tx, id)
	p, _ := args.Get(0).(*entities.PendingAction)
	return p, args.Error(1)
}

func (m *MockPendingActionRepository) CreatePendingAction(ctx context.Context, tx pgx.Tx, action *entities.PendingAction) (*entities.PendingAction, error) {
	args := m.Called(ctx, tx, action)
	p, _ := args.Get(0).(*entities.PendingAction)
	return p, args.Error(1)
}

func (m *MockPendingActionRepository) Resolve(ctx context.Context, tx pgx.Tx, id uint64, status string, adminID uint64, at time.Time) (*entities.PendingAction, error) {
	args := m.Called(ctx, tx, id, status, adminID, at)
	p, _ := args.Get(0).(*entities.PendingAction)
	return p, args.Error(1)
}

type MockOfficeRepository struct {
	mock.Mock
}

func (m *MockOfficeRepository) GetOffices(ctx context.Context, filter types.Filter) ([]entities.Office, uint64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]entities.Office)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockOfficeRepository) FindOffice(ctx context.Context, id uint64) (*entities.Office, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*entities.Office)
	return o, args.Error(1)
}

func (m *MockOfficeRepository) CreateOffice(ctx context.Context, office entities.Office) (*entities.Office, error) {
	args := m.Called(ctx, office)
	o, _ := args.Get(0).(*entities.Office)
	return o, args.Error(1)
}

func (m *MockOfficeRepository) UpdateOffice(ctx context.Context, office entities.Office) (*entities.Office, error) {
	args := m.Called(ctx, office)
	o, _ := args.Get(0).(*entities.Office)
	return o, args.Error(1)
}

func (m *MockOfficeRepository) DeleteOffice(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) GetMaintenances(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]entities.Maintenance)
	return list, args.Get(1).(uint64), args.Error(2)
}

func (m *MockMaintenanceRepository) FindMaintenance(ctx context.Context, id uint64) (*entities.Maintenance, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entities.Maintenance)
	return r, args.Error(1)
}

func (m *MockMaintenanceRepository) CreateMaintenance(ctx context.Context, rec entities.Maintenance) (uint64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockMaintenanceRepository) UpdateMaintenance(ctx context.Context, rec entities.Maintenance) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockMaintenanceRepository) DeleteMaintenance(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entities.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user *entities.User) (uint64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uint64), args.Error(1)
}
