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

const officeTable = "offices"

var officeMap = map[string]string{
	"id":         "o.id",
	"name":       "o.name",
	"location":   "o.location",
	"created_at": "o.created_at",
	"updated_at": "o.updated_at",
}

var officeColumns = []string{"o.id", "o.name", "o.location", "o.created_at", "o.updated_at"}

type OfficeRepositoryInterface interface {
	GetOffices(ctx context.Context, filter types.Filter) ([]entities.Office, uint64, error)
	FindOffice(ctx context.Context, id uint64) (*entities.Office, error)
	CreateOffice(ctx context.Context, office entities.Office) (*entities.Office, error)
	UpdateOffice(ctx context.Context, office entities.Office) (*entities.Office, error)
	DeleteOffice(ctx context.Context, id uint64) error
}

type OfficeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOfficeRepository(storage *pgxpool.Pool, logger *zap.Logger) OfficeRepositoryInterface {
	return &OfficeRepository{storage: storage, logger: logger}
}

func scanOffice(row pgx.Row) (*entities.Office, error) {
	var o entities.Office
	err := row.Scan(&o.ID, &o.Name, &o.Location, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan office: %w", err)
	}
	return &o, nil
}

func (r *OfficeRepository) GetOffices(ctx context.Context, filter types.Filter) ([]entities.Office, uint64, error) {
	countBuilder := bd.ApplySearch(bd.Psql.Select("COUNT(o.id)").From(officeTable+" AS o"), filter.Search, "o.name", "o.location")
	countBuilder = bd.ApplyListParams(countBuilder, bd.CountFilter(filter), officeMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count offices: %w", err)
	}
	if total == 0 {
		return []entities.Office{}, 0, nil
	}

	builder := bd.ApplySearch(bd.Psql.Select(officeColumns...).From(officeTable+" AS o"), filter.Search, "o.name", "o.location")
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("o.id DESC")
	}
	builder = bd.ApplyListParams(builder, filter, officeMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offices: %w", err)
	}
	defer rows.Close()

	offices := make([]entities.Office, 0, filter.Limit)
	for rows.Next() {
		office, err := scanOffice(rows)
		if err != nil {
			return nil, 0, err
		}
		offices = append(offices, *office)
	}
	return offices, total, rows.Err()
}

func (r *OfficeRepository) FindOffice(ctx context.Context, id uint64) (*entities.Office, error) {
	query, args, err := bd.Psql.Select(officeColumns...).From(officeTable + " AS o").Where(sq.Eq{"o.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanOffice(r.storage.QueryRow(ctx, query, args...))
}

func (r *OfficeRepository) CreateOffice(ctx context.Context, office entities.Office) (*entities.Office, error) {
	query := `
		INSERT INTO offices (name, location, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, name, location, created_at, updated_at`
	return scanOffice(r.storage.QueryRow(ctx, query, office.Name, office.Location))
}

func (r *OfficeRepository) UpdateOffice(ctx context.Context, office entities.Office) (*entities.Office, error) {
	query := `
		UPDATE offices SET name = $1, location = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, location, created_at, updated_at`
	return scanOffice(r.storage.QueryRow(ctx, query, office.Name, office.Location, office.ID))
}

// DeleteOffice removes the office; its divisions go with it (ON DELETE
// CASCADE) and assets of those divisions are left without a division.
func (r *OfficeRepository) DeleteOffice(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM offices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete office: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
