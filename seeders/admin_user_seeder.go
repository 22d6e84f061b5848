package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/config"
	"asset-system/pkg/utils"
)

// SeedAdmin creates the administrator account, or resets its password and
// re-enables it when it already exists.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) error {
	if cfg.Seeder.AdminUsername == "" || cfg.Seeder.AdminPassword == "" {
		logger.Warn("SEED_ADMIN_USERNAME or SEED_ADMIN_PASSWORD not set, admin not seeded")
		return nil
	}

	hashed, err := utils.HashPassword(cfg.Seeder.AdminPassword)
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db, logger)
	id, err := userRepo.UpsertUser(ctx, &entities.User{
		Username: cfg.Seeder.AdminUsername,
		Email:    cfg.Seeder.AdminEmail,
		Password: hashed,
		FullName: "Administrator",
		IsAdmin:  true,
		IsActive: true,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("admin user ready", zap.String("username", cfg.Seeder.AdminUsername), zap.Uint64("id", id))
	return nil
}
