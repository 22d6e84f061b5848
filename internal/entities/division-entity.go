package entities

import "asset-system/pkg/types"

type Division struct {
	ID             uint64 `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	HeadOfDivision string `json:"head_of_division" db:"head_of_division"`
	OfficeID       uint64 `json:"office_id" db:"office_id"`

	Office *ShortOffice `json:"office,omitempty" db:"-"`

	types.BaseEntity
}

type ShortOffice struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type ShortDivision struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	OfficeID   uint64 `json:"office_id"`
	OfficeName string `json:"office_name"`
}
