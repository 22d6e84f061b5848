package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/infrastructure/bd"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"
)

var maintenanceMap = map[string]string{
	"id":       "m.id",
	"date":     "m.date",
	"asset_id": "m.asset_id",
	"cost":     "m.cost",
}

var maintenanceColumns = []string{
	"m.id", "m.date", "m.details", "m.cost", "m.asset_id", "m.created_at", "m.updated_at", "a.name",
}

type MaintenanceRepositoryInterface interface {
	GetMaintenances(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error)
	FindMaintenance(ctx context.Context, id uint64) (*entities.Maintenance, error)
	CreateMaintenance(ctx context.Context, m entities.Maintenance) (uint64, error)
	UpdateMaintenance(ctx context.Context, m entities.Maintenance) error
	DeleteMaintenance(ctx context.Context, id uint64) error
}

type MaintenanceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewMaintenanceRepository(storage *pgxpool.Pool, logger *zap.Logger) MaintenanceRepositoryInterface {
	return &MaintenanceRepository{storage: storage, logger: logger}
}

func scanMaintenance(row pgx.Row) (*entities.Maintenance, error) {
	var m entities.Maintenance
	err := row.Scan(&m.ID, &m.Date, &m.Details, &m.Cost, &m.AssetID, &m.CreatedAt, &m.UpdatedAt, &m.AssetName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan maintenance: %w", err)
	}
	return &m, nil
}

func (r *MaintenanceRepository) baseSelect(columns ...string) sq.SelectBuilder {
	return bd.Psql.Select(columns...).From("maintenances AS m").Join("assets a ON a.id = m.asset_id")
}

func (r *MaintenanceRepository) GetMaintenances(ctx context.Context, filter types.Filter) ([]entities.Maintenance, uint64, error) {
	countBuilder := bd.ApplySearch(r.baseSelect("COUNT(m.id)"), filter.Search, "m.details", "a.name")
	countBuilder = bd.ApplyListParams(countBuilder, bd.CountFilter(filter), maintenanceMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count maintenances: %w", err)
	}
	if total == 0 {
		return []entities.Maintenance{}, 0, nil
	}

	builder := bd.ApplySearch(r.baseSelect(maintenanceColumns...), filter.Search, "m.details", "a.name")
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("m.date DESC", "m.id DESC")
	}
	builder = bd.ApplyListParams(builder, filter, maintenanceMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list maintenances: %w", err)
	}
	defer rows.Close()

	list := make([]entities.Maintenance, 0, filter.Limit)
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *m)
	}
	return list, total, rows.Err()
}

func (r *MaintenanceRepository) FindMaintenance(ctx context.Context, id uint64) (*entities.Maintenance, error) {
	query, args, err := r.baseSelect(maintenanceColumns...).Where(sq.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanMaintenance(r.storage.QueryRow(ctx, query, args...))
}

func (r *MaintenanceRepository) CreateMaintenance(ctx context.Context, m entities.Maintenance) (uint64, error) {
	query := `
		INSERT INTO maintenances (date, details, cost, asset_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query, m.Date, m.Details, m.Cost, m.AssetID).Scan(&id)
	if apperrors.IsForeignKeyViolation(err) {
		return 0, fmt.Errorf("asset %d: %w", m.AssetID, apperrors.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("insert maintenance: %w", err)
	}
	return id, nil
}

func (r *MaintenanceRepository) UpdateMaintenance(ctx context.Context, m entities.Maintenance) error {
	query := `
		UPDATE maintenances SET date = $1, details = $2, cost = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.storage.Exec(ctx, query, m.Date, m.Details, m.Cost, m.ID)
	if err != nil {
		return fmt.Errorf("update maintenance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MaintenanceRepository) DeleteMaintenance(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM maintenances WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
