package entities

import "asset-system/pkg/types"

type User struct {
	ID       uint64 `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"`
	FullName string `json:"full_name" db:"full_name"`
	IsAdmin  bool   `json:"is_admin" db:"is_admin"`
	IsActive bool   `json:"is_active" db:"is_active"`

	types.BaseEntity
}
