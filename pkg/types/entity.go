package types

import "time"

// BaseEntity holds the row timestamps every persisted record carries. Both
// are set by Postgres (NOW() on insert and update) and never by callers.
type BaseEntity struct {
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
