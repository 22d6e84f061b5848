package dto

import (
	"encoding/json"

	"asset-system/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateAssetDTO struct {
	Name             string  `json:"name" validate:"required,notblank,max=50"`
	ManufacturedDate *string `json:"manufactured_date" validate:"omitempty,datetime=2006-01-02"`
	Cost             int64   `json:"cost" validate:"required,gt=0,lte=1000000000000000"`
	Invoice          string  `json:"invoice" validate:"required,max=50"`
	Category         string  `json:"category" validate:"required,asset_category"`
	Specification    *string `json:"specification" validate:"omitempty,max=700"`
	ModelNumber      *string `json:"model_number" validate:"omitempty,max=50"`
	ImageRef         *string `json:"image_ref" validate:"omitempty,max=255"`
	DivisionID       *uint64 `json:"division_id" validate:"omitempty,gt=0"`
	UsefulLife       *int    `json:"useful_life" validate:"omitempty,gt=0"`
}

// UpdateAssetDTO is both the admin direct-update body and the payload of an
// update request. Only keys present in the JSON are applied.
type UpdateAssetDTO struct {
	Name             null.String `json:"name" validate:"omitempty,notblank,max=50"`
	ManufacturedDate null.String `json:"manufactured_date" validate:"omitempty,datetime=2006-01-02"`
	Cost             null.Int64  `json:"cost" validate:"omitempty,gt=0,lte=1000000000000000"`
	Invoice          null.String `json:"invoice" validate:"omitempty,max=50"`
	Category         null.String `json:"category" validate:"omitempty,asset_category"`
	Specification    null.String `json:"specification" validate:"omitempty,max=700"`
	ModelNumber      null.String `json:"model_number" validate:"omitempty,max=50"`
	ImageRef         null.String `json:"image_ref" validate:"omitempty,max=255"`
	DivisionID       null.Uint64 `json:"division_id" validate:"omitempty,gt=0"`
	AssetStatus      null.String `json:"asset_status" validate:"omitempty,asset_status"`
	UsefulLife       null.Int    `json:"useful_life" validate:"omitempty,gt=0"`
}

// UpdateAssetFields lists the JSON keys UpdateAssetDTO accepts.
var UpdateAssetFields = map[string]struct{}{
	"name": {}, "manufactured_date": {}, "cost": {}, "invoice": {}, "category": {},
	"specification": {}, "model_number": {}, "image_ref": {}, "division_id": {},
	"asset_status": {}, "useful_life": {},
}

type DeleteRequestDTO struct {
	Description string `json:"description" validate:"required,notblank,max=200"`
}

type UpdateRequestDTO struct {
	Description string          `json:"description" validate:"required,notblank,max=200"`
	Payload     json.RawMessage `json:"payload" validate:"required"`
}

type AssetResponseDTO struct {
	entities.Asset
	CurrentValue float64 `json:"current_value"`
}

type EvaluateStatusResponseDTO struct {
	Updated int `json:"updated"`
}
