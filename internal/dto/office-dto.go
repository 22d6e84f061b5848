package dto

import "github.com/aarondl/null/v8"

type CreateOfficeDTO struct {
	Name     string `json:"name" validate:"required,notblank,max=50"`
	Location string `json:"location" validate:"required,notblank,max=50"`
}

type UpdateOfficeDTO struct {
	Name     null.String `json:"name" validate:"omitempty,notblank,max=50"`
	Location null.String `json:"location" validate:"omitempty,notblank,max=50"`
}
