package entities

import (
	"encoding/json"
	"time"
)

type PendingAction struct {
	ID             uint64          `json:"id" db:"id"`
	AssetID        *uint64         `json:"asset_id" db:"asset_id"`
	AssetLabel     string          `json:"asset_label" db:"asset_label"`
	Action         string          `json:"action" db:"action"`
	RequestPayload json.RawMessage `json:"request_payload,omitempty" db:"request_payload"`
	RequestedBy    uint64          `json:"requested_by" db:"requested_by"`
	Status         string          `json:"status" db:"status"`
	Description    string          `json:"description" db:"description"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	ResolvedAt     *time.Time      `json:"resolved_at" db:"resolved_at"`
	ResolvedBy     *uint64         `json:"resolved_by" db:"resolved_by"`

	RequesterName string `json:"requester_name,omitempty" db:"-"`
}
