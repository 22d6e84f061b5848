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

var divisionMap = map[string]string{
	"id":               "d.id",
	"name":             "d.name",
	"head_of_division": "d.head_of_division",
	"office_id":        "d.office_id",
	"created_at":       "d.created_at",
}

var divisionColumns = []string{
	"d.id", "d.name", "d.head_of_division", "d.office_id", "d.created_at", "d.updated_at",
	"o.name",
}

type DivisionRepositoryInterface interface {
	GetDivisions(ctx context.Context, filter types.Filter) ([]entities.Division, uint64, error)
	FindDivision(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Division, error)
	CreateDivision(ctx context.Context, division entities.Division) (uint64, error)
	UpdateDivision(ctx context.Context, division entities.Division) error
	DeleteDivision(ctx context.Context, id uint64) error
}

type DivisionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDivisionRepository(storage *pgxpool.Pool, logger *zap.Logger) DivisionRepositoryInterface {
	return &DivisionRepository{storage: storage, logger: logger}
}

func scanDivision(row pgx.Row) (*entities.Division, error) {
	var d entities.Division
	var officeName string
	err := row.Scan(&d.ID, &d.Name, &d.HeadOfDivision, &d.OfficeID, &d.CreatedAt, &d.UpdatedAt, &officeName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan division: %w", err)
	}
	d.Office = &entities.ShortOffice{ID: d.OfficeID, Name: officeName}
	return &d, nil
}

func (r *DivisionRepository) baseSelect(columns ...string) sq.SelectBuilder {
	return bd.Psql.Select(columns...).From("divisions AS d").Join("offices o ON o.id = d.office_id")
}

func (r *DivisionRepository) GetDivisions(ctx context.Context, filter types.Filter) ([]entities.Division, uint64, error) {
	countBuilder := bd.ApplySearch(r.baseSelect("COUNT(d.id)"), filter.Search, "d.name", "d.head_of_division")
	countBuilder = bd.ApplyListParams(countBuilder, bd.CountFilter(filter), divisionMap)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count divisions: %w", err)
	}
	if total == 0 {
		return []entities.Division{}, 0, nil
	}

	builder := bd.ApplySearch(r.baseSelect(divisionColumns...), filter.Search, "d.name", "d.head_of_division")
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("d.id DESC")
	}
	builder = bd.ApplyListParams(builder, filter, divisionMap)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list divisions: %w", err)
	}
	defer rows.Close()

	divisions := make([]entities.Division, 0, filter.Limit)
	for rows.Next() {
		d, err := scanDivision(rows)
		if err != nil {
			return nil, 0, err
		}
		divisions = append(divisions, *d)
	}
	return divisions, total, rows.Err()
}

func (r *DivisionRepository) FindDivision(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Division, error) {
	query, args, err := r.baseSelect(divisionColumns...).Where(sq.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanDivision(pick(r.storage, tx).QueryRow(ctx, query, args...))
}

func (r *DivisionRepository) CreateDivision(ctx context.Context, division entities.Division) (uint64, error) {
	query := `
		INSERT INTO divisions (name, head_of_division, office_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query, division.Name, division.HeadOfDivision, division.OfficeID).Scan(&id)
	if apperrors.IsForeignKeyViolation(err) {
		return 0, apperrors.Validationf("office %d does not exist", division.OfficeID)
	}
	if err != nil {
		return 0, fmt.Errorf("insert division: %w", err)
	}
	return id, nil
}

func (r *DivisionRepository) UpdateDivision(ctx context.Context, division entities.Division) error {
	query := `
		UPDATE divisions SET name = $1, head_of_division = $2, office_id = $3, updated_at = NOW()
		WHERE id = $4`
	result, err := r.storage.Exec(ctx, query, division.Name, division.HeadOfDivision, division.OfficeID, division.ID)
	if apperrors.IsForeignKeyViolation(err) {
		return apperrors.Validationf("office %d does not exist", division.OfficeID)
	}
	if err != nil {
		return fmt.Errorf("update division: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDivision leaves the division's assets in place with division_id
// cleared (ON DELETE SET NULL).
func (r *DivisionRepository) DeleteDivision(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM divisions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete division: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
