package dto

import "github.com/aarondl/null/v8"

type CreateMaintenanceDTO struct {
	Date    string   `json:"date" validate:"required,datetime=2006-01-02"`
	Details string   `json:"details" validate:"required,notblank,max=200"`
	Cost    *float64 `json:"cost" validate:"omitempty,gte=0,lte=99999999.99"`
	AssetID uint64   `json:"asset_id" validate:"required,gt=0"`
}

type UpdateMaintenanceDTO struct {
	Date    null.String  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Details null.String  `json:"details" validate:"omitempty,notblank,max=200"`
	Cost    null.Float64 `json:"cost" validate:"omitempty,gte=0,lte=99999999.99"`
}
