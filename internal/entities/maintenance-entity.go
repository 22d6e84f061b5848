package entities

import (
	"time"

	"asset-system/pkg/types"
)

type Maintenance struct {
	ID      uint64    `json:"id" db:"id"`
	Date    time.Time `json:"date" db:"date"`
	Details string    `json:"details" db:"details"`
	Cost    *float64  `json:"cost" db:"cost"`
	AssetID uint64    `json:"asset_id" db:"asset_id"`

	AssetName string `json:"asset_name,omitempty" db:"-"`

	types.BaseEntity
}
