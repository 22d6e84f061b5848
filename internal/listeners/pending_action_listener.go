package listeners

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/events"
	"asset-system/internal/services"
	"asset-system/pkg/constants"
	"asset-system/pkg/eventbus"
)

// PendingActionNotification is the websocket payload for workflow events.
type PendingActionNotification struct {
	ActionID     uint64  `json:"action_id"`
	AssetID      *uint64 `json:"asset_id,omitempty"`
	AssetLabel   string  `json:"asset_label"`
	Action       string  `json:"action"`
	Status       string  `json:"status"`
	RequestedBy  uint64  `json:"requested_by"`
	AssetDeleted bool    `json:"asset_deleted,omitempty"`
}

func newNotification(a entities.PendingAction) PendingActionNotification {
	return PendingActionNotification{
		ActionID:    a.ID,
		AssetID:     a.AssetID,
		AssetLabel:  a.AssetLabel,
		Action:      a.Action,
		Status:      a.Status,
		RequestedBy: a.RequestedBy,
	}
}

// PendingActionListener pushes submitted requests to connected admins and
// resolutions to admins and the requester.
type PendingActionListener struct {
	notifier services.WebSocketNotificationServiceInterface
	logger   *zap.Logger
}

func NewPendingActionListener(notifier services.WebSocketNotificationServiceInterface, logger *zap.Logger) *PendingActionListener {
	return &PendingActionListener{notifier: notifier, logger: logger}
}

func (l *PendingActionListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(constants.EventPendingActionSubmitted, l.handleSubmitted)
	bus.Subscribe(constants.EventPendingActionResolved, l.handleResolved)
	l.logger.Info("pending action listener subscribed",
		zap.Strings("events", []string{constants.EventPendingActionSubmitted, constants.EventPendingActionResolved}))
}

func (l *PendingActionListener) handleSubmitted(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.PendingActionSubmittedEvent)
	if !ok {
		return nil
	}
	reached, err := l.notifier.SendToAdmins(newNotification(e.Action), event.Name())
	if err != nil {
		return err
	}
	l.logger.Info("admins notified of pending action",
		zap.Uint64("actionID", e.Action.ID),
		zap.Int("admins", len(reached)),
	)
	return nil
}

func (l *PendingActionListener) handleResolved(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.PendingActionResolvedEvent)
	if !ok {
		return nil
	}
	payload := newNotification(e.Action)
	payload.AssetDeleted = e.AssetDeleted

	reached, err := l.notifier.SendToAdmins(payload, event.Name())
	if err != nil {
		return err
	}
	// an admin requester already got it through the admin fan-out
	if slices.Contains(reached, e.Action.RequestedBy) {
		return nil
	}
	return l.notifier.SendNotification(e.Action.RequestedBy, payload, event.Name())
}
