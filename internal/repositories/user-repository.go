package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"asset-system/internal/entities"
	apperrors "asset-system/pkg/errors"
)

const userSelectFields = "id, username, email, password, full_name, is_admin, is_active, created_at, updated_at"

type UserRepositoryInterface interface {
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
	FindUserByID(ctx context.Context, id uint64) (*entities.User, error)
	UpsertUser(ctx context.Context, user *entities.User) (uint64, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FullName,
		&user.IsAdmin, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByUsername matches case-insensitively.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE LOWER(username) = LOWER($1)", userSelectFields)
	return scanUser(r.storage.QueryRow(ctx, query, username))
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userSelectFields)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

// UpsertUser inserts the user or refreshes an existing one with the same
// username. Used by the seeder.
func (r *UserRepository) UpsertUser(ctx context.Context, user *entities.User) (uint64, error) {
	query := `
		INSERT INTO users (username, email, password, full_name, is_admin, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE SET
			email = EXCLUDED.email, password = EXCLUDED.password, full_name = EXCLUDED.full_name,
			is_admin = EXCLUDED.is_admin, is_active = EXCLUDED.is_active, updated_at = NOW()
		RETURNING id`
	var id uint64
	err := r.storage.QueryRow(ctx, query,
		user.Username, user.Email, user.Password, user.FullName, user.IsAdmin, user.IsActive,
	).Scan(&id)
	if err != nil {
		r.logger.Error("upsert user", zap.String("username", user.Username), zap.Error(err))
		return 0, fmt.Errorf("upsert user %s: %w", user.Username, err)
	}
	return id, nil
}
