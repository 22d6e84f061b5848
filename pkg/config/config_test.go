package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.Asset.StatusSweepInterval)
	assert.Equal(t, 90, cfg.Asset.TroubleshootAfterDays)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessTokenTTL)
}

func TestNew_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STATUS_SWEEP_INTERVAL", "10m")
	t.Setenv("TROUBLESHOOT_AFTER_DAYS", "30")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local ,")

	cfg := New()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 10*time.Minute, cfg.Asset.StatusSweepInterval)
	assert.Equal(t, 30, cfg.Asset.TroubleshootAfterDays)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSAllowedOrigins)
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STATUS_SWEEP_INTERVAL", "often")
	t.Setenv("TROUBLESHOOT_AFTER_DAYS", "ninety")

	cfg := New()

	assert.Equal(t, time.Hour, cfg.Asset.StatusSweepInterval)
	assert.Equal(t, 90, cfg.Asset.TroubleshootAfterDays)
}
