package repositories

import (
	"context"
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

const assetNumberConstraint = "assets_asset_number_key"

// filter and sort keys accepted on the asset list
var assetMap = map[string]string{
	"id":            "a.id",
	"name":          "a.name",
	"cost":          "a.cost",
	"category":      "a.category",
	"asset_status":  "a.asset_status",
	"asset_number":  "a.asset_number",
	"is_pending":    "a.is_pending",
	"is_updated":    "a.is_updated",
	"division_id":   "a.division_id",
	"office_id":     "d.office_id",
	"received_date": "a.received_date",
	"depreciation":  "a.depreciation",
	"created_at":    "a.created_at",
}

var assetSearchColumns = []string{"a.name", "a.asset_number", "a.model_number", "a.invoice"}

var assetColumns = []string{
	"a.id", "a.name", "a.manufactured_date", "a.cost", "a.invoice", "a.category",
	"a.specification", "a.model_number", "a.received_date", "a.image_ref",
	"a.division_id", "a.asset_number", "a.asset_status", "a.depreciation", "a.useful_life",
	"a.is_pending", "a.is_updated", "a.pending_description", "a.created_at", "a.updated_at",
	"d.name", "d.office_id", "o.name",
}

type AssetRepositoryInterface interface {
	GetAssets(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error)
	FindAsset(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error)
	FindAssetForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error)
	CreateAsset(ctx context.Context, tx pgx.Tx, asset *entities.Asset) (uint64, error)
	UpdateAsset(ctx context.Context, tx pgx.Tx, asset *entities.Asset) error
	SetRequestState(ctx context.Context, tx pgx.Tx, id uint64, isPending, isUpdated bool, description *string) error
	SetImageRef(ctx context.Context, tx pgx.Tx, id uint64, ref *string) error
	DeleteAsset(ctx context.Context, tx pgx.Tx, id uint64) error

	LockNumberPrefix(ctx context.Context, tx pgx.Tx, prefix string) error
	MaxAssetSequence(ctx context.Context, tx pgx.Tx, prefix string) (int, error)

	MarkStaleAssets(ctx context.Context, receivedBefore time.Time) (int64, error)
	GetStats(ctx context.Context) (*entities.AssetStats, error)
	GetCategoryDistribution(ctx context.Context) (map[string]int64, error)
}

type AssetRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewAssetRepository(storage *pgxpool.Pool, logger *zap.Logger) AssetRepositoryInterface {
	return &AssetRepository{storage: storage, logger: logger}
}

func scanAsset(row pgx.Row) (*entities.Asset, error) {
	var a entities.Asset
	var divisionName, officeName *string
	var officeID *uint64

	err := row.Scan(
		&a.ID, &a.Name, &a.ManufacturedDate, &a.Cost, &a.Invoice, &a.Category,
		&a.Specification, &a.ModelNumber, &a.ReceivedDate, &a.ImageRef,
		&a.DivisionID, &a.AssetNumber, &a.AssetStatus, &a.Depreciation, &a.UsefulLife,
		&a.IsPending, &a.IsUpdated, &a.PendingDescription, &a.CreatedAt, &a.UpdatedAt,
		&divisionName, &officeID, &officeName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan asset: %w", err)
	}

	if a.DivisionID != nil && divisionName != nil {
		a.Division = &entities.ShortDivision{ID: *a.DivisionID, Name: *divisionName}
		if officeID != nil {
			a.Division.OfficeID = *officeID
		}
		if officeName != nil {
			a.Division.OfficeName = *officeName
		}
	}
	return &a, nil
}

func (r *AssetRepository) baseSelect(columns ...string) sq.SelectBuilder {
	return bd.Psql.Select(columns...).
		From("assets AS a").
		LeftJoin("divisions d ON d.id = a.division_id").
		LeftJoin("offices o ON o.id = d.office_id")
}

func (r *AssetRepository) GetAssets(ctx context.Context, filter types.Filter) ([]entities.Asset, uint64, error) {
	countBuilder := bd.ApplySearch(r.baseSelect("COUNT(a.id)"), filter.Search, assetSearchColumns...)
	countBuilder = bd.ApplyListParams(countBuilder, bd.CountFilter(filter), assetMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}
	if total == 0 {
		return []entities.Asset{}, 0, nil
	}

	builder := bd.ApplySearch(r.baseSelect(assetColumns...), filter.Search, assetSearchColumns...)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("a.id DESC")
	}
	builder = bd.ApplyListParams(builder, filter, assetMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	r.logger.Debug("list assets", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	assets := make([]entities.Asset, 0, min(int(total), max(filter.Limit, 1)))
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, 0, err
		}
		assets = append(assets, *a)
	}
	return assets, total, rows.Err()
}

func (r *AssetRepository) FindAsset(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error) {
	query, args, err := r.baseSelect(assetColumns...).Where(sq.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanAsset(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

// FindAssetForUpdate row-locks the asset until tx ends.
func (r *AssetRepository) FindAssetForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Asset, error) {
	query, args, err := r.baseSelect(assetColumns...).Where(sq.Eq{"a.id": id}).Suffix("FOR UPDATE OF a").ToSql()
	if err != nil {
		return nil, err
	}
	return scanAsset(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *AssetRepository) CreateAsset(ctx context.Context, tx pgx.Tx, a *entities.Asset) (uint64, error) {
	query := `
		INSERT INTO assets (
			name, manufactured_date, cost, invoice, category, specification, model_number,
			received_date, image_ref, division_id, asset_number, asset_status, depreciation,
			useful_life, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id`

	var id uint64
	err := pick(r.storage, tx).QueryRow(ctx, query,
		a.Name, a.ManufacturedDate, a.Cost, a.Invoice, a.Category, a.Specification, a.ModelNumber,
		a.ReceivedDate, a.ImageRef, a.DivisionID, a.AssetNumber, a.AssetStatus, a.Depreciation,
		a.UsefulLife,
	).Scan(&id)
	if err != nil {
		return 0, r.translateWriteError(err, a)
	}
	return id, nil
}

// UpdateAsset persists every mutable column. received_date is never
// written, and an asset_number already stored is kept.
func (r *AssetRepository) UpdateAsset(ctx context.Context, tx pgx.Tx, a *entities.Asset) error {
	query := `
		UPDATE assets SET
			name = $1, manufactured_date = $2, cost = $3, invoice = $4, category = $5,
			specification = $6, model_number = $7, image_ref = $8, division_id = $9,
			asset_number = COALESCE(asset_number, $10), asset_status = $11, depreciation = $12,
			useful_life = $13, is_pending = $14, is_updated = $15, pending_description = $16,
			updated_at = NOW()
		WHERE id = $17`

	result, err := pick(r.storage, tx).Exec(ctx, query,
		a.Name, a.ManufacturedDate, a.Cost, a.Invoice, a.Category,
		a.Specification, a.ModelNumber, a.ImageRef, a.DivisionID,
		a.AssetNumber, a.AssetStatus, a.Depreciation,
		a.UsefulLife, a.IsPending, a.IsUpdated, a.PendingDescription,
		a.ID,
	)
	if err != nil {
		return r.translateWriteError(err, a)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AssetRepository) SetRequestState(ctx context.Context, tx pgx.Tx, id uint64, isPending, isUpdated bool, description *string) error {
	query := `
		UPDATE assets SET is_pending = $1, is_updated = $2, pending_description = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := pick(r.storage, tx).Exec(ctx, query, isPending, isUpdated, description, id)
	if err != nil {
		return fmt.Errorf("set request state of asset %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AssetRepository) SetImageRef(ctx context.Context, tx pgx.Tx, id uint64, ref *string) error {
	result, err := pick(r.storage, tx).Exec(ctx, "UPDATE assets SET image_ref = $1, updated_at = NOW() WHERE id = $2", ref, id)
	if err != nil {
		return fmt.Errorf("set image of asset %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAsset removes the asset; maintenance records cascade and pending
// actions keep their history with asset_id cleared.
func (r *AssetRepository) DeleteAsset(ctx context.Context, tx pgx.Tx, id uint64) error {
	result, err := pick(r.storage, tx).Exec(ctx, "DELETE FROM assets WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete asset %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LockNumberPrefix serialises number generation for one number prefix
// (e.g. "MKS/U/COMP/HR/") until tx ends.
func (r *AssetRepository) LockNumberPrefix(ctx context.Context, tx pgx.Tx, prefix string) error {
	if _, err := pick(r.storage, tx).Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", "asset_number:"+prefix); err != nil {
		return fmt.Errorf("lock number prefix %s: %w", prefix, err)
	}
	return nil
}

// MaxAssetSequence returns the highest numeric suffix among asset numbers
// starting with prefix, or 0 when there is none. The match is on the number
// itself, so assets moved into or out of a division still count where their
// number says they belong.
func (r *AssetRepository) MaxAssetSequence(ctx context.Context, tx pgx.Tx, prefix string) (int, error) {
	query := `
		SELECT COALESCE(MAX(substring(asset_number FROM $1)::bigint), 0) FROM assets
		WHERE asset_number LIKE $2 AND substring(asset_number FROM $1) ~ '^[0-9]{1,18}$'`
	var seq int64
	err := pick(r.storage, tx).QueryRow(ctx, query, len(prefix)+1, likePrefix(prefix)).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("max asset sequence for %s: %w", prefix, err)
	}
	return int(seq), nil
}

func likePrefix(prefix string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(prefix) + "%"
}

// MarkStaleAssets moves ACTIVE assets received on or before receivedBefore
// to NEEDS_TROUBLESHOOT. Only asset_status is written.
func (r *AssetRepository) MarkStaleAssets(ctx context.Context, receivedBefore time.Time) (int64, error) {
	query := `
		UPDATE assets SET asset_status = $1
		WHERE asset_status = $2 AND received_date <= $3`
	result, err := r.storage.Exec(ctx, query,
		constants.AssetStatusNeedsTroubleshoot, constants.AssetStatusActive, receivedBefore)
	if err != nil {
		return 0, fmt.Errorf("mark stale assets: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *AssetRepository) GetStats(ctx context.Context) (*entities.AssetStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_updated),
			COUNT(*) FILTER (WHERE is_pending),
			COUNT(*) FILTER (WHERE asset_status = $1),
			COUNT(*) FILTER (WHERE asset_status = $2)
		FROM assets`
	var s entities.AssetStats
	err := r.storage.QueryRow(ctx, query, constants.AssetStatusNeedsTroubleshoot, constants.AssetStatusInactive).
		Scan(&s.Total, &s.Updated, &s.Pending, &s.NeedsTroubleshoot, &s.Inactive)
	if err != nil {
		return nil, fmt.Errorf("asset stats: %w", err)
	}
	return &s, nil
}

func (r *AssetRepository) GetCategoryDistribution(ctx context.Context) (map[string]int64, error) {
	rows, err := r.storage.Query(ctx, "SELECT category, COUNT(*) FROM assets GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("category distribution: %w", err)
	}
	defer rows.Close()

	dist := make(map[string]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		dist[category] = count
	}
	return dist, rows.Err()
}

func (r *AssetRepository) translateWriteError(err error, a *entities.Asset) error {
	switch {
	case apperrors.IsUniqueViolation(err, assetNumberConstraint):
		return fmt.Errorf("%w: asset number already taken", ErrAssetNumberTaken)
	case apperrors.IsForeignKeyViolation(err):
		return apperrors.Validationf("division %d does not exist", derefID(a.DivisionID))
	default:
		return fmt.Errorf("write asset: %w", err)
	}
}

// ErrAssetNumberTaken is returned when a generated number lost a race; the
// caller may regenerate and retry.
var ErrAssetNumberTaken = fmt.Errorf("%w: asset number", apperrors.ErrConflict)

func derefID(id *uint64) uint64 {
	if id == nil {
		return 0
	}
	return *id
}
