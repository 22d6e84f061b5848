package seeders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
)

// SeedDirectory creates the sample offices and their divisions. Offices and
// divisions that already exist by name are left alone.
func SeedDirectory(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) error {
	officeRepo := repositories.NewOfficeRepository(db, logger)
	divisionRepo := repositories.NewDivisionRepository(db, logger)

	for _, o := range officesData {
		officeID, err := lookupID(ctx, db, "SELECT id FROM offices WHERE name = $1", o.Name)
		if err != nil {
			return err
		}
		if officeID == 0 {
			created, err := officeRepo.CreateOffice(ctx, entities.Office{Name: o.Name, Location: o.Location})
			if err != nil {
				return fmt.Errorf("seed office %q: %w", o.Name, err)
			}
			officeID = created.ID
			logger.Info("office created", zap.String("name", o.Name), zap.Uint64("id", officeID))
		}

		for _, d := range o.Divisions {
			divisionID, err := lookupID(ctx, db, "SELECT id FROM divisions WHERE name = $1 AND office_id = $2", d.Name, officeID)
			if err != nil {
				return err
			}
			if divisionID != 0 {
				continue
			}
			id, err := divisionRepo.CreateDivision(ctx, entities.Division{
				Name:           d.Name,
				HeadOfDivision: d.HeadOfDivision,
				OfficeID:       officeID,
			})
			if err != nil {
				return fmt.Errorf("seed division %q: %w", d.Name, err)
			}
			logger.Info("division created", zap.String("name", d.Name), zap.Uint64("id", id))
		}
	}
	return nil
}

func lookupID(ctx context.Context, db *pgxpool.Pool, query string, args ...interface{}) (uint64, error) {
	var id uint64
	err := db.QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lookup: %w", err)
	}
	return id, nil
}
