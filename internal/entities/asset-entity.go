package entities

import (
	"fmt"
	"time"

	"asset-system/pkg/types"
)

type Asset struct {
	ID                 uint64     `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	ManufacturedDate   *time.Time `json:"manufactured_date" db:"manufactured_date"`
	Cost               int64      `json:"cost" db:"cost"`
	Invoice            string     `json:"invoice" db:"invoice"`
	Category           string     `json:"category" db:"category"`
	Specification      *string    `json:"specification" db:"specification"`
	ModelNumber        *string    `json:"model_number" db:"model_number"`
	ReceivedDate       *time.Time `json:"received_date" db:"received_date"`
	ImageRef           *string    `json:"image_ref" db:"image_ref"`
	DivisionID         *uint64    `json:"division_id" db:"division_id"`
	AssetNumber        *string    `json:"asset_number" db:"asset_number"`
	AssetStatus        string     `json:"asset_status" db:"asset_status"`
	Depreciation       float64    `json:"depreciation" db:"depreciation"`
	UsefulLife         int        `json:"useful_life" db:"useful_life"`
	IsPending          bool       `json:"is_pending" db:"is_pending"`
	IsUpdated          bool       `json:"is_updated" db:"is_updated"`
	PendingDescription *string    `json:"pending_description" db:"pending_description"`

	Division *ShortDivision `json:"division,omitempty" db:"-"`

	types.BaseEntity
}

// HasOpenRequest reports whether a delete or update request is awaiting review.
func (a *Asset) HasOpenRequest() bool {
	return a.IsPending || a.IsUpdated
}

// Label identifies the asset in notifications and in the pending action
// history, which outlives the asset itself.
func (a *Asset) Label() string {
	if a.AssetNumber != nil && *a.AssetNumber != "" {
		return fmt.Sprintf("%s (%s)", a.Name, *a.AssetNumber)
	}
	return a.Name
}
