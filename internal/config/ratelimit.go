package config

import (
	"os"
	"strconv"
)

// RateLimitConfig holds token bucket parameters for the API rate limiter.
// Burst is the bucket capacity, RatePerSec the steady refill rate. Buckets
// are scoped per user (or per IP when anonymous) under Prefix.
type RateLimitConfig struct {
	Enabled    bool
	Burst      int
	RatePerSec float64
	Prefix     string
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables,
// clamping nonsensical values back to usable defaults.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:    envBool("RATE_LIMIT_ENABLED", true),
		Burst:      envInt("RATE_LIMIT_BURST", 60),
		RatePerSec: envFloat("RATE_LIMIT_PER_SEC", 10),
		Prefix:     envStr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envFloat(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return d
}
