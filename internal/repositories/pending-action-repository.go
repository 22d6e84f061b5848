package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/infrastructure/bd"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

var pendingActionMap = map[string]string{
	"id":           "p.id",
	"asset_id":     "p.asset_id",
	"action":       "p.action",
	"status":       "p.status",
	"requested_by": "p.requested_by",
	"created_at":   "p.created_at",
	"resolved_at":  "p.resolved_at",
}

var pendingActionColumns = []string{
	"p.id", "p.asset_id", "p.asset_label", "p.action", "p.request_payload", "p.requested_by",
	"p.status", "p.description", "p.created_at", "p.resolved_at", "p.resolved_by",
	"(SELECT COALESCE(NULLIF(u.full_name, ''), u.username) FROM users u WHERE u.id = p.requested_by)",
}

type PendingActionRepositoryInterface interface {
	GetPendingActions(ctx context.Context, filter types.Filter, requestedBy *uint64) ([]entities.PendingAction, uint64, error)
	FindPendingAction(ctx context.Context, tx pgx.Tx, id uint64) (*entities.PendingAction, error)
	CreatePendingAction(ctx context.Context, tx pgx.Tx, action *entities.PendingAction) (*entities.PendingAction, error)
	Resolve(ctx context.Context, tx pgx.Tx, id uint64, status string, adminID uint64, at time.Time) (*entities.PendingAction, error)
}

type PendingActionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPendingActionRepository(storage *pgxpool.Pool, logger *zap.Logger) PendingActionRepositoryInterface {
	return &PendingActionRepository{storage: storage, logger: logger}
}

func scanPendingAction(row pgx.Row) (*entities.PendingAction, error) {
	var p entities.PendingAction
	var payload []byte
	var requester *string

	err := row.Scan(
		&p.ID, &p.AssetID, &p.AssetLabel, &p.Action, &payload, &p.RequestedBy,
		&p.Status, &p.Description, &p.CreatedAt, &p.ResolvedAt, &p.ResolvedBy,
		&requester,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pending action: %w", err)
	}
	if len(payload) > 0 {
		p.RequestPayload = json.RawMessage(payload)
	}
	if requester != nil {
		p.RequesterName = *requester
	}
	return &p, nil
}

func (r *PendingActionRepository) GetPendingActions(ctx context.Context, filter types.Filter, requestedBy *uint64) ([]entities.PendingAction, uint64, error) {
	scope := func(b sq.SelectBuilder) sq.SelectBuilder {
		if requestedBy != nil {
			b = b.Where(sq.Eq{"p.requested_by": *requestedBy})
		}
		return bd.ApplySearch(b, filter.Search, "p.asset_label", "p.description")
	}

	countBuilder := scope(bd.Psql.Select("COUNT(p.id)").From("pending_actions AS p"))
	countBuilder = bd.ApplyListParams(countBuilder, bd.CountFilter(filter), pendingActionMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pending actions: %w", err)
	}
	if total == 0 {
		return []entities.PendingAction{}, 0, nil
	}

	builder := scope(bd.Psql.Select(pendingActionColumns...).From("pending_actions AS p"))
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("p.created_at DESC", "p.id DESC")
	}
	builder = bd.ApplyListParams(builder, filter, pendingActionMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending actions: %w", err)
	}
	defer rows.Close()

	list := make([]entities.PendingAction, 0, filter.Limit)
	for rows.Next() {
		p, err := scanPendingAction(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *p)
	}
	return list, total, rows.Err()
}

func (r *PendingActionRepository) FindPendingAction(ctx context.Context, tx pgx.Tx, id uint64) (*entities.PendingAction, error) {
	query, args, err := bd.Psql.Select(pendingActionColumns...).From("pending_actions AS p").Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanPendingAction(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *PendingActionRepository) CreatePendingAction(ctx context.Context, tx pgx.Tx, a *entities.PendingAction) (*entities.PendingAction, error) {
	query := fmt.Sprintf(`
		INSERT INTO pending_actions AS p (asset_id, asset_label, action, request_payload, requested_by, status, description, created_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, NOW())
		RETURNING %s`, strings.Join(pendingActionColumns, ", "))

	created, err := scanPendingAction(pick(r.storage, tx).QueryRow(ctx, query,
		a.AssetID, a.AssetLabel, a.Action, payloadArg(a.RequestPayload), a.RequestedBy,
		constants.PendingStatusPending, a.Description,
	))
	if apperrors.IsUniqueViolation(err, "pending_actions_one_open_per_asset") {
		return nil, apperrors.Conflictf("asset already has an open request")
	}
	return created, err
}

// Resolve moves a PENDING action to status in a single compare-and-swap.
// A missing id yields ErrNotFound, an already resolved one ErrInvalidState.
func (r *PendingActionRepository) Resolve(ctx context.Context, tx pgx.Tx, id uint64, status string, adminID uint64, at time.Time) (*entities.PendingAction, error) {
	q := pick(r.storage, tx)
	query := fmt.Sprintf(`
		UPDATE pending_actions AS p SET status = $1, resolved_at = $2, resolved_by = $3
		WHERE p.id = $4 AND p.status = $5
		RETURNING %s`, strings.Join(pendingActionColumns, ", "))

	resolved, err := scanPendingAction(q.QueryRow(ctx, query, status, at, adminID, id, constants.PendingStatusPending))
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	var current string
	err = q.QueryRow(ctx, "SELECT status FROM pending_actions WHERE id = $1", id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pending action %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read pending action %d: %w", id, err)
	}
	return nil, fmt.Errorf("%w: pending action %d is already %s", apperrors.ErrInvalidState, id, strings.ToLower(current))
}

func payloadArg(p json.RawMessage) interface{} {
	if len(p) == 0 {
		return nil
	}
	return string(p)
}
