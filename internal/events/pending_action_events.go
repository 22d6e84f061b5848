package events

import (
	"asset-system/internal/entities"
	"asset-system/pkg/constants"
)

// PendingActionSubmittedEvent is published after a delete or update request
// has been committed.
type PendingActionSubmittedEvent struct {
	Action entities.PendingAction
}

func (e PendingActionSubmittedEvent) Name() string {
	return constants.EventPendingActionSubmitted
}

// PendingActionResolvedEvent is published after an approval or rejection
// has been committed.
type PendingActionResolvedEvent struct {
	Action entities.PendingAction
	// AssetDeleted is set when an approved delete removed the asset.
	AssetDeleted bool
}

func (e PendingActionResolvedEvent) Name() string {
	return constants.EventPendingActionResolved
}
