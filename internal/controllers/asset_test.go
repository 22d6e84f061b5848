package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

type assetControllerFixture struct {
	assets    *MockAssetService
	stats     *MockStatsService
	export    *MockExportService
	evaluator *MockEvaluator
	ctrl      *AssetController
}

func newAssetControllerFixture() *assetControllerFixture {
	f := &assetControllerFixture{
		assets:    new(MockAssetService),
		stats:     new(MockStatsService),
		export:    new(MockExportService),
		evaluator: new(MockEvaluator),
	}
	f.ctrl = NewAssetController(f.assets, f.stats, f.export, f.evaluator, zap.NewNop())
	return f
}

func TestAssetController_GetAssetsWrapsPagination(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()

	f.assets.On("GetAssets", mock.Anything, mock.MatchedBy(func(fl types.Filter) bool {
		return fl.Filter["category"] == constants.CategoryLaptop && fl.Limit == 1
	})).Return([]dto.AssetResponseDTO{{Asset: entities.Asset{ID: 1, Name: "ThinkPad"}, CurrentValue: 900}}, uint64(7), nil)

	c, rec := newRequest(e, http.MethodGet, "/api/assets?withPagination=true&limit=1&filter[category]=LAPT", "", 2, false)
	require.NoError(t, f.ctrl.GetAssets(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		List       []dto.AssetResponseDTO `json:"list"`
		Pagination types.Pagination       `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Body, &body))
	require.Len(t, body.List, 1)
	assert.Equal(t, 900.0, body.List[0].CurrentValue)
	assert.Equal(t, uint64(7), body.Pagination.TotalCount)
	assert.Equal(t, 7, body.Pagination.TotalPages)
}

func TestAssetController_FindAsset(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		setup    func(f *assetControllerFixture)
		wantCode int
	}{
		{
			name:     "invalid id",
			id:       "abc",
			setup:    func(f *assetControllerFixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "not found",
			id:   "9",
			setup: func(f *assetControllerFixture) {
				f.assets.On("FindAsset", mock.Anything, uint64(9)).Return(nil, apperrors.ErrNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "found",
			id:   "3",
			setup: func(f *assetControllerFixture) {
				f.assets.On("FindAsset", mock.Anything, uint64(3)).Return(&dto.AssetResponseDTO{Asset: entities.Asset{ID: 3}}, nil)
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho(t)
			f := newAssetControllerFixture()
			tt.setup(f)

			c, rec := newRequest(e, http.MethodGet, "/api/assets/"+tt.id, "", 2, false)
			require.NoError(t, f.ctrl.FindAsset(withID(c, tt.id)))

			assert.Equal(t, tt.wantCode, rec.Code)
			f.assets.AssertExpectations(t)
		})
	}
}

func TestAssetController_CreateAssetValidation(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()

	body := `{"name":"Desk PC","cost":1000,"invoice":"INV-1","category":"TOASTER"}`
	c, rec := newRequest(e, http.MethodPost, "/api/assets", body, 2, false)
	require.NoError(t, f.ctrl.CreateAsset(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "asset_category")
	f.assets.AssertNotCalled(t, "CreateAsset", mock.Anything, mock.Anything)
}

func TestAssetController_CreateAsset(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()

	f.assets.On("CreateAsset", mock.Anything, mock.MatchedBy(func(d dto.CreateAssetDTO) bool {
		return d.Name == "Desk PC" && d.Category == constants.CategoryComputer
	})).Return(&dto.AssetResponseDTO{Asset: entities.Asset{ID: 11, Name: "Desk PC"}, CurrentValue: 1000}, nil)

	body := `{"name":"Desk PC","cost":1000,"invoice":"INV-1","category":"COMP"}`
	c, rec := newRequest(e, http.MethodPost, "/api/assets", body, 2, false)
	require.NoError(t, f.ctrl.CreateAsset(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode(t, rec).Status)
}

func TestAssetController_UpdateAssetPassesRawBody(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()

	body := `{"name":"Renamed","specification":null}`
	f.assets.On("UpdateAsset", mock.Anything, uint64(4), mock.MatchedBy(func(d dto.UpdateAssetDTO) bool {
		return d.Name.Valid && d.Name.String == "Renamed" && !d.Specification.Valid
	}), []byte(body)).Return(&dto.AssetResponseDTO{Asset: entities.Asset{ID: 4, Name: "Renamed"}}, nil)

	c, rec := newRequest(e, http.MethodPut, "/api/assets/4", body, 1, true)
	require.NoError(t, f.ctrl.UpdateAsset(withID(c, "4")))

	assert.Equal(t, http.StatusOK, rec.Code)
	f.assets.AssertExpectations(t)
}

func TestAssetController_UpdateAssetRejectsBadStatus(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()

	c, rec := newRequest(e, http.MethodPut, "/api/assets/4", `{"asset_status":"BROKEN"}`, 1, true)
	require.NoError(t, f.ctrl.UpdateAsset(withID(c, "4")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssetController_EvaluateStatus(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()
	f.evaluator.On("EvaluateAll", mock.Anything, mock.Anything).Return(3, nil)

	c, rec := newRequest(e, http.MethodPost, "/api/assets/evaluate-status", "", 1, true)
	require.NoError(t, f.ctrl.EvaluateStatus(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var res dto.EvaluateStatusResponseDTO
	require.NoError(t, json.Unmarshal(decode(t, rec).Body, &res))
	assert.Equal(t, 3, res.Updated)
}

func TestAssetController_GetStats(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()
	f.stats.On("GetStats", mock.Anything).Return(&entities.AssetStats{Total: 10, Pending: 2}, nil)

	c, rec := newRequest(e, http.MethodGet, "/api/assets/stats", "", 2, false)
	require.NoError(t, f.ctrl.GetStats(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var stats entities.AssetStats
	require.NoError(t, json.Unmarshal(decode(t, rec).Body, &stats))
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
}

func TestAssetController_ExportAssets(t *testing.T) {
	e := newTestEcho(t)
	f := newAssetControllerFixture()
	f.export.On("Export", mock.Anything, mock.Anything).Return(excelize.NewFile(), nil)

	c, rec := newRequest(e, http.MethodGet, "/api/assets/export", "", 1, true)
	require.NoError(t, f.ctrl.ExportAssets(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "asset_register_")
	assert.NotZero(t, rec.Body.Len())
}
