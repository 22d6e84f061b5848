package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
)

type AssetStatsServiceInterface interface {
	GetStats(ctx context.Context) (*entities.AssetStats, error)
	GetCategoryDistribution(ctx context.Context) (map[string]int64, error)
	Invalidate(ctx context.Context)
}

// AssetStatsService serves the dashboard counters and the category
// distribution through a read-through cache. Writers call Invalidate.
type AssetStatsService struct {
	assetRepo repositories.AssetRepositoryInterface
	cache     repositories.CacheRepositoryInterface
	ttl       time.Duration
	logger    *zap.Logger
}

func NewAssetStatsService(
	assetRepo repositories.AssetRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	ttl time.Duration,
	logger *zap.Logger,
) *AssetStatsService {
	return &AssetStatsService{assetRepo: assetRepo, cache: cache, ttl: ttl, logger: logger}
}

func (s *AssetStatsService) GetStats(ctx context.Context) (*entities.AssetStats, error) {
	var stats entities.AssetStats
	if s.readCache(ctx, constants.CacheKeyAssetStats, &stats) {
		return &stats, nil
	}

	fresh, err := s.assetRepo.GetStats(ctx)
	if err != nil {
		s.logger.Error("asset stats", zap.Error(err))
		return nil, err
	}
	s.writeCache(ctx, constants.CacheKeyAssetStats, fresh)
	return fresh, nil
}

// GetCategoryDistribution counts assets per category. Every known category
// is present, with zero when it has no assets.
func (s *AssetStatsService) GetCategoryDistribution(ctx context.Context) (map[string]int64, error) {
	dist := make(map[string]int64, len(constants.Categories))
	if s.readCache(ctx, constants.CacheKeyCategoryDistribution, &dist) {
		return dist, nil
	}

	counts, err := s.assetRepo.GetCategoryDistribution(ctx)
	if err != nil {
		s.logger.Error("category distribution", zap.Error(err))
		return nil, err
	}
	for _, c := range constants.Categories {
		dist[c] = counts[c]
	}
	s.writeCache(ctx, constants.CacheKeyCategoryDistribution, dist)
	return dist, nil
}

func (s *AssetStatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Del(ctx, constants.CacheKeyAssetStats, constants.CacheKeyCategoryDistribution); err != nil {
		s.logger.Warn("could not invalidate asset stats cache", zap.Error(err))
	}
}

// readCache treats every cache failure as a miss.
func (s *AssetStatsService) readCache(ctx context.Context, key string, dst interface{}) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("stats cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *AssetStatsService) writeCache(ctx context.Context, key string, v interface{}) {
	if s.ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}
