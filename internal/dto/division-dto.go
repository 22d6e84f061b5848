package dto

import "github.com/aarondl/null/v8"

type CreateDivisionDTO struct {
	Name           string `json:"name" validate:"required,notblank,max=100"`
	HeadOfDivision string `json:"head_of_division" validate:"required,max=50"`
	OfficeID       uint64 `json:"office_id" validate:"required,gt=0"`
}

type UpdateDivisionDTO struct {
	Name           null.String `json:"name" validate:"omitempty,notblank,max=100"`
	HeadOfDivision null.String `json:"head_of_division" validate:"omitempty,max=50"`
	OfficeID       null.Uint64 `json:"office_id" validate:"omitempty,gt=0"`
}
