package dto

import "asset-system/internal/entities"

// PendingActionResolutionDTO is returned by approve and reject.
type PendingActionResolutionDTO struct {
	Action entities.PendingAction `json:"action"`
	Asset  *AssetResponseDTO      `json:"asset,omitempty"`
}
