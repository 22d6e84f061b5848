package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/config"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := &config.AuthConfig{MaxLoginAttempts: 3, LockoutDuration: 15 * time.Minute}
	user := &entities.User{ID: 1, Username: "admin", Password: hashed(t, "secret"), IsActive: true, IsAdmin: true}

	t.Run("valid credentials", func(t *testing.T) {
		_, cache := newRedisCache(t)
		users := new(MockUserRepository)
		users.On("FindUserByUsername", ctx, "admin").Return(user, nil)
		svc := NewAuthService(users, cache, repositories.NewTokenDenyList(cache), zap.NewNop(), cfg)

		got, err := svc.Login(ctx, dto.LoginDTO{Username: " admin ", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), got.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, cache := newRedisCache(t)
		users := new(MockUserRepository)
		users.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)
		svc := NewAuthService(users, cache, repositories.NewTokenDenyList(cache), zap.NewNop(), cfg)

		_, err := svc.Login(ctx, dto.LoginDTO{Username: "ghost", Password: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("locks after repeated failures", func(t *testing.T) {
		mr, cache := newRedisCache(t)
		users := new(MockUserRepository)
		users.On("FindUserByUsername", ctx, "admin").Return(user, nil)
		svc := NewAuthService(users, cache, repositories.NewTokenDenyList(cache), zap.NewNop(), cfg)

		for i := 0; i < cfg.MaxLoginAttempts; i++ {
			_, err := svc.Login(ctx, dto.LoginDTO{Username: "admin", Password: "wrong"})
			assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
		}

		_, err := svc.Login(ctx, dto.LoginDTO{Username: "admin", Password: "secret"})
		assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
		assert.True(t, mr.Exists(fmt.Sprintf(constants.CacheKeyLockout, 1)))

		mr.FastForward(cfg.LockoutDuration + time.Second)
		_, err = svc.Login(ctx, dto.LoginDTO{Username: "admin", Password: "secret"})
		assert.NoError(t, err)
	})

	t.Run("disabled account", func(t *testing.T) {
		_, cache := newRedisCache(t)
		disabled := *user
		disabled.IsActive = false
		users := new(MockUserRepository)
		users.On("FindUserByUsername", ctx, "admin").Return(&disabled, nil)
		svc := NewAuthService(users, cache, repositories.NewTokenDenyList(cache), zap.NewNop(), cfg)

		_, err := svc.Login(ctx, dto.LoginDTO{Username: "admin", Password: "secret"})
		assert.ErrorIs(t, err, apperrors.ErrUserDisabled)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	_, cache := newRedisCache(t)
	denyList := repositories.NewTokenDenyList(cache)
	svc := NewAuthService(new(MockUserRepository), cache, denyList, zap.NewNop(), &config.AuthConfig{})

	require.NoError(t, svc.Logout(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err := denyList.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
