package repositories

import (
	"context"
	"fmt"
	"time"

	"asset-system/pkg/constants"
)

// TokenDenyList remembers logged-out access tokens by jti until they would
// have expired anyway.
type TokenDenyList struct {
	cache CacheRepositoryInterface
}

func NewTokenDenyList(cache CacheRepositoryInterface) *TokenDenyList {
	return &TokenDenyList{cache: cache}
}

// Revoke is a no-op for tokens that are already expired.
func (d *TokenDenyList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return d.cache.Set(ctx, fmt.Sprintf(constants.CacheKeyRevokedToken, tokenID), "1", ttl)
}

func (d *TokenDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return d.cache.Exists(ctx, fmt.Sprintf(constants.CacheKeyRevokedToken, tokenID))
}
