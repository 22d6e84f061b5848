package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/pkg/constants"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

const assetRegisterSheet = "Asset Register"

var assetRegisterHeaders = []interface{}{
	"Asset Number", "Name", "Category", "Model Number", "Invoice", "Office", "Division",
	"Status", "Received", "Manufactured", "Cost", "Depreciation", "Current Value",
	"Useful Life (years)", "Open Request",
}

type AssetExportServiceInterface interface {
	Export(ctx context.Context, filter types.Filter) (*excelize.File, error)
}

// AssetExportService renders the asset register as an xlsx workbook.
type AssetExportService struct {
	assets AssetServiceInterface
	logger *zap.Logger
}

func NewAssetExportService(assets AssetServiceInterface, logger *zap.Logger) *AssetExportService {
	return &AssetExportService{assets: assets, logger: logger}
}

// Export writes every asset matching filter. Pagination in filter is
// ignored. The caller owns the returned file and must Close it.
func (s *AssetExportService) Export(ctx context.Context, filter types.Filter) (*excelize.File, error) {
	filter.WithPagination = false
	list, _, err := s.assets.GetAssets(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", assetRegisterSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(assetRegisterSheet, "A1", &assetRegisterHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(assetRegisterHeaders))
		_ = f.SetCellStyle(assetRegisterSheet, "A1", lastCol+"1", style)
	}

	for i := range list {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := assetRegisterRow(&list[i])
		if err := f.SetSheetRow(assetRegisterSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(assetRegisterSheet, "A", "A", 22)
	_ = f.SetColWidth(assetRegisterSheet, "B", "B", 30)
	_ = f.SetColWidth(assetRegisterSheet, "F", "G", 25)

	s.logger.Info("asset register exported", zap.Int("rows", len(list)))
	return f, nil
}

// ExportFileName is the attachment name for an export made at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("asset_register_%s.xlsx", t.Format(utils.DateLayout))
}

func assetRegisterRow(a *dto.AssetResponseDTO) []interface{} {
	var office, division, openRequest string
	if a.Division != nil {
		office, division = a.Division.OfficeName, a.Division.Name
	}
	switch {
	case a.IsPending:
		openRequest = "Delete"
	case a.IsUpdated:
		openRequest = "Update"
	}
	category := a.Category
	if label, ok := constants.CategoryLabels[a.Category]; ok {
		category = label
	}

	return []interface{}{
		utils.SafeDeref(a.AssetNumber), a.Name, category, utils.SafeDeref(a.ModelNumber), a.Invoice,
		office, division, a.AssetStatus, formatDate(a.ReceivedDate), formatDate(a.ManufacturedDate),
		a.Cost, a.Depreciation, a.CurrentValue, a.UsefulLife, openRequest,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(utils.DateLayout)
}
