package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMethods(t *testing.T) {
	m := parseMethods("get, head ,POST")
	assert.True(t, m["GET"])
	assert.True(t, m["HEAD"])
	assert.True(t, m["POST"])
	assert.False(t, m["DELETE"])

	assert.Empty(t, parseMethods(""))
}

func TestParseDurFallsBackToOneSecond(t *testing.T) {
	assert.Equal(t, 30*time.Second, parseDur("30s"))
	assert.Equal(t, time.Second, parseDur("nonsense"))
}

func TestLoadRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_BURST", "-3")
	t.Setenv("RATE_LIMIT_PER_SEC", "0")

	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.Burst)
	assert.Equal(t, float64(1), cfg.RatePerSec)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.Equal(t, "route_query", cfg.KeyStrategy)
	assert.Equal(t, "cache", cfg.Prefix)
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}
