package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "asset-system/pkg/errors"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, CacheRepositoryInterface) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCacheRepository(client)
}

func TestRedisCacheRepository_GetMissingKey(t *testing.T) {
	_, cache := newTestCache(t)

	_, err := cache.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRedisCacheRepository_SetGetDel(t *testing.T) {
	_, cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	val, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, cache.Del(ctx, "k"))
	ok, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, cache.Del(ctx))
}

func TestRedisCacheRepository_IncrAndExpire(t *testing.T) {
	mr, cache := newTestCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := cache.Incr(ctx, "attempts")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	ok, err := cache.Expire(ctx, "attempts", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	exists, err := cache.Exists(ctx, "attempts")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTokenDenyList(t *testing.T) {
	mr, cache := newTestCache(t)
	ctx := context.Background()
	denyList := NewTokenDenyList(cache)

	revoked, err := denyList.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denyList.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = denyList.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// expired tokens are not stored
	require.NoError(t, denyList.Revoke(ctx, "jti-2", 0))
	revoked, err = denyList.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = denyList.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
