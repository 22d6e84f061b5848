package entities

import "asset-system/pkg/types"

type Office struct {
	ID       uint64 `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Location string `json:"location" db:"location"`

	types.BaseEntity
}
