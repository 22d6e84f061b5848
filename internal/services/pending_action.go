package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/events"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/eventbus"
	"asset-system/pkg/types"
	"asset-system/pkg/utils"
)

type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type PendingActionServiceInterface interface {
	SubmitDeleteRequest(ctx context.Context, assetID, requesterID uint64, description string) (*entities.PendingAction, error)
	SubmitUpdateRequest(ctx context.Context, assetID, requesterID uint64, payload json.RawMessage, description string) (*entities.PendingAction, error)
	Approve(ctx context.Context, actionID, adminID uint64) (*dto.PendingActionResolutionDTO, error)
	Reject(ctx context.Context, actionID, adminID uint64) (*dto.PendingActionResolutionDTO, error)
	GetPendingActions(ctx context.Context, filter types.Filter) ([]entities.PendingAction, uint64, error)
	FindPendingAction(ctx context.Context, id uint64) (*entities.PendingAction, error)
}

// PendingActionService runs the review workflow for asset changes requested
// by regular users. An action goes PENDING -> APPROVED or PENDING -> REJECTED
// exactly once; the asset carries is_pending / is_updated while its request
// is open.
type PendingActionService struct {
	actionRepo repositories.PendingActionRepositoryInterface
	assetRepo  repositories.AssetRepositoryInterface
	txManager  repositories.TxManagerInterface
	numbers    *AssetNumberGenerator
	stats      StatsInvalidator
	publisher  EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewPendingActionService(
	actionRepo repositories.PendingActionRepositoryInterface,
	assetRepo repositories.AssetRepositoryInterface,
	txManager repositories.TxManagerInterface,
	numbers *AssetNumberGenerator,
	stats StatsInvalidator,
	publisher EventPublisher,
	logger *zap.Logger,
) *PendingActionService {
	return &PendingActionService{
		actionRepo: actionRepo,
		assetRepo:  assetRepo,
		txManager:  txManager,
		numbers:    numbers,
		stats:      stats,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *PendingActionService) SubmitDeleteRequest(ctx context.Context, assetID, requesterID uint64, description string) (*entities.PendingAction, error) {
	return s.submit(ctx, assetID, requesterID, constants.PendingActionDelete, nil, description)
}

// SubmitUpdateRequest stores payload verbatim. It must be a non-empty JSON
// object whose keys are all updatable asset fields.
func (s *PendingActionService) SubmitUpdateRequest(ctx context.Context, assetID, requesterID uint64, payload json.RawMessage, description string) (*entities.PendingAction, error) {
	if err := checkUpdatePayload(payload); err != nil {
		return nil, err
	}
	return s.submit(ctx, assetID, requesterID, constants.PendingActionUpdate, payload, description)
}

func checkUpdatePayload(payload json.RawMessage) error {
	var fields map[string]json.RawMessage
	if len(payload) == 0 || json.Unmarshal(payload, &fields) != nil || len(fields) == 0 {
		return apperrors.Validationf("payload must be a non-empty JSON object")
	}
	for key := range fields {
		if _, ok := dto.UpdateAssetFields[key]; !ok {
			return apperrors.Validationf("field '%s' cannot be changed by an update request", key)
		}
	}
	var patch dto.UpdateAssetDTO
	if err := json.Unmarshal(payload, &patch); err != nil {
		return apperrors.Validationf("payload has a field of the wrong type")
	}
	return nil
}

func (s *PendingActionService) submit(ctx context.Context, assetID, requesterID uint64, kind string, payload json.RawMessage, description string) (*entities.PendingAction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.Validationf("description is required")
	}
	logger := s.logger.With(zap.Uint64("asset_id", assetID), zap.String("action", kind), zap.Uint64("requested_by", requesterID))

	var created *entities.PendingAction
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		asset, err := s.assetRepo.FindAssetForUpdate(ctx, tx, assetID)
		if err != nil {
			return err
		}
		if asset.HasOpenRequest() {
			return apperrors.Conflictf("asset %d already has an open request", assetID)
		}

		isPending := kind == constants.PendingActionDelete
		isUpdated := kind == constants.PendingActionUpdate
		if err := s.assetRepo.SetRequestState(ctx, tx, assetID, isPending, isUpdated, &description); err != nil {
			return err
		}

		created, err = s.actionRepo.CreatePendingAction(ctx, tx, &entities.PendingAction{
			AssetID:        &assetID,
			AssetLabel:     asset.Label(),
			Action:         kind,
			RequestPayload: payload,
			RequestedBy:    requesterID,
			Description:    description,
		})
		return err
	})
	if err != nil {
		logger.Warn("request not submitted", zap.Error(err))
		return nil, err
	}

	logger.Info("request submitted", zap.Uint64("pending_action_id", created.ID))
	s.stats.Invalidate(ctx)
	s.publisher.Publish(ctx, events.PendingActionSubmittedEvent{Action: *created})
	return created, nil
}

// Approve resolves the action and carries it out in the same transaction:
// a DELETE removes the asset, an UPDATE applies the stored payload.
func (s *PendingActionService) Approve(ctx context.Context, actionID, adminID uint64) (*dto.PendingActionResolutionDTO, error) {
	logger := s.logger.With(zap.Uint64("pending_action_id", actionID), zap.Uint64("admin_id", adminID))

	var result dto.PendingActionResolutionDTO
	var assetDeleted bool
	err := runWithNumberRetry(ctx, s.txManager, s.logger, func(tx pgx.Tx) error {
		result, assetDeleted = dto.PendingActionResolutionDTO{}, false
		now := s.now()

		action, err := s.actionRepo.Resolve(ctx, tx, actionID, constants.PendingStatusApproved, adminID, now)
		if err != nil {
			return err
		}
		if action.AssetID == nil {
			return fmt.Errorf("asset of pending action %d: %w", actionID, apperrors.ErrNotFound)
		}
		assetID := *action.AssetID

		switch action.Action {
		case constants.PendingActionDelete:
			if err := s.assetRepo.DeleteAsset(ctx, tx, assetID); err != nil {
				return err
			}
			assetDeleted = true
		case constants.PendingActionUpdate:
			asset, err := s.assetRepo.FindAssetForUpdate(ctx, tx, assetID)
			if err != nil {
				return err
			}
			var patch dto.UpdateAssetDTO
			if err := json.Unmarshal(action.RequestPayload, &patch); err != nil {
				return apperrors.Validationf("stored payload of pending action %d is unreadable", actionID)
			}
			asset.IsPending, asset.IsUpdated, asset.PendingDescription = false, false, nil
			if err := patchAsset(ctx, tx, s.assetRepo, s.numbers, asset, patch, action.RequestPayload, now); err != nil {
				return err
			}
			updated, err := s.assetRepo.FindAsset(ctx, tx, assetID)
			if err != nil {
				return err
			}
			result.Asset = toAssetResponseDTO(updated)
		default:
			return fmt.Errorf("%w: unknown action %q", apperrors.ErrInvalidState, action.Action)
		}

		result.Action = *action
		return nil
	})
	if err != nil {
		logger.Warn("approve failed", zap.Error(err))
		return nil, err
	}

	logger.Info("pending action approved", zap.String("action", result.Action.Action))
	s.stats.Invalidate(ctx)
	s.publisher.Publish(ctx, events.PendingActionResolvedEvent{Action: result.Action, AssetDeleted: assetDeleted})
	return &result, nil
}

// Reject resolves the action and clears the asset's request flag. Nothing
// else on the asset changes.
func (s *PendingActionService) Reject(ctx context.Context, actionID, adminID uint64) (*dto.PendingActionResolutionDTO, error) {
	logger := s.logger.With(zap.Uint64("pending_action_id", actionID), zap.Uint64("admin_id", adminID))

	var result dto.PendingActionResolutionDTO
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		action, err := s.actionRepo.Resolve(ctx, tx, actionID, constants.PendingStatusRejected, adminID, s.now())
		if err != nil {
			return err
		}
		result.Action = *action
		if action.AssetID == nil {
			return nil
		}

		asset, err := s.assetRepo.FindAssetForUpdate(ctx, tx, *action.AssetID)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		isPending, isUpdated := asset.IsPending, asset.IsUpdated
		if action.Action == constants.PendingActionDelete {
			isPending = false
		} else {
			isUpdated = false
		}
		if err := s.assetRepo.SetRequestState(ctx, tx, asset.ID, isPending, isUpdated, nil); err != nil {
			return err
		}
		asset.IsPending, asset.IsUpdated, asset.PendingDescription = isPending, isUpdated, nil
		result.Asset = toAssetResponseDTO(asset)
		return nil
	})
	if err != nil {
		logger.Warn("reject failed", zap.Error(err))
		return nil, err
	}

	logger.Info("pending action rejected", zap.String("action", result.Action.Action))
	s.stats.Invalidate(ctx)
	s.publisher.Publish(ctx, events.PendingActionResolvedEvent{Action: result.Action})
	return &result, nil
}

// GetPendingActions lists every action for admins and only the caller's own
// submissions for everyone else.
func (s *PendingActionService) GetPendingActions(ctx context.Context, filter types.Filter) ([]entities.PendingAction, uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}
	var requestedBy *uint64
	if !utils.IsAdminFromCtx(ctx) {
		requestedBy = &userID
	}
	for _, key := range []string{"status", "action"} {
		if v, ok := filter.Filter[key].(string); ok {
			filter = filter.Set(key, strings.ToUpper(v))
		}
	}
	return s.actionRepo.GetPendingActions(ctx, filter, requestedBy)
}

func (s *PendingActionService) FindPendingAction(ctx context.Context, id uint64) (*entities.PendingAction, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	action, err := s.actionRepo.FindPendingAction(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if !utils.IsAdminFromCtx(ctx) && action.RequestedBy != userID {
		return nil, apperrors.ErrForbidden
	}
	return action, nil
}
