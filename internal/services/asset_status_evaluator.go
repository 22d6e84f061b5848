package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
)

// StatsInvalidator drops cached report figures after bulk writes.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

type AssetStatusEvaluatorInterface interface {
	EvaluateAll(ctx context.Context, now time.Time) (int, error)
}

// AssetStatusEvaluator flags ACTIVE assets that have been in service longer
// than the troubleshoot threshold. It only ever moves ACTIVE to
// NEEDS_TROUBLESHOOT.
type AssetStatusEvaluator struct {
	assetRepo repositories.AssetRepositoryInterface
	stats     StatsInvalidator
	afterDays int
	logger    *zap.Logger
	now       func() time.Time
}

func NewAssetStatusEvaluator(
	assetRepo repositories.AssetRepositoryInterface,
	stats StatsInvalidator,
	afterDays int,
	logger *zap.Logger,
) *AssetStatusEvaluator {
	if afterDays <= 0 {
		afterDays = constants.DefaultTroubleshootAfterDays
	}
	return &AssetStatusEvaluator{
		assetRepo: assetRepo,
		stats:     stats,
		afterDays: afterDays,
		logger:    logger,
		now:       time.Now,
	}
}

// EvaluateAll runs one sweep as of now and returns how many assets changed.
func (e *AssetStatusEvaluator) EvaluateAll(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.AddDate(0, 0, -e.afterDays)
	n, err := e.assetRepo.MarkStaleAssets(ctx, cutoff)
	if err != nil {
		e.logger.Error("asset status sweep failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		e.logger.Info("assets flagged for troubleshooting", zap.Int64("count", n), zap.Time("received_before", cutoff))
		if e.stats != nil {
			e.stats.Invalidate(ctx)
		}
	}
	return int(n), nil
}

// Run sweeps once immediately and then every interval until ctx is done.
func (e *AssetStatusEvaluator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info("asset status sweep started", zap.Duration("interval", interval), zap.Int("after_days", e.afterDays))
	_, _ = e.EvaluateAll(ctx, e.now())

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("asset status sweep stopped")
			return
		case <-ticker.C:
			_, _ = e.EvaluateAll(ctx, e.now())
		}
	}
}
