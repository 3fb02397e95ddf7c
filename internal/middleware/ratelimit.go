package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinetick/cinetick/internal/config"
)

// tokenBucketScript refills and consumes atomically so concurrent requests
// cannot overdraw the bucket.
//
// KEYS[1] = bucket hash key
// ARGV[1] = capacity
// ARGV[2] = refill tokens per second (float)
// ARGV[3] = now in unix milliseconds
// ARGV[4] = ttl seconds for the bucket key
// Returns {allowed (0/1), remaining tokens (floored)}.
var tokenBucketScript = redis.NewScript(`
local key      = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate     = tonumber(ARGV[2])
local now_ms   = tonumber(ARGV[3])
local ttl      = tonumber(ARGV[4])

local data   = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = capacity
  ts = now_ms
end

local elapsed = math.max(0, now_ms - ts) / 1000.0
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
  allowed = 1
  tokens = tokens - 1
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('EXPIRE', key, ttl)

return {allowed, math.floor(tokens)}
`)

// clientIP prefers X-Forwarded-For (first hop) and falls back to RemoteAddr.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// buildRateKey scopes the bucket per authenticated user when available,
// otherwise per client IP.
func buildRateKey(prefix, jwtSecret string, c echo.Context) string {
	if uid := currentUserID(c, jwtSecret); uid != 0 {
		return fmt.Sprintf("%s:u:%d", prefix, uid)
	}
	return fmt.Sprintf("%s:ip:%s", prefix, clientIP(c.Request()))
}

// NewRateLimiter enforces a Redis-backed token bucket. The limiter runs on
// every route, before JWTAuth, so it verifies bearer tokens itself to scope
// buckets per user. Disabled config or a nil client yields a pass-through.
// Redis outages fail open so a cache incident never takes the API down with
// it.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client, jwtSecret string) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return func(c echo.Context) error { return next(c) } }
	}

	capacity := cfg.Burst
	if capacity <= 0 {
		capacity = 20
	}
	ratePerSec := cfg.RatePerSec
	if ratePerSec <= 0 {
		ratePerSec = 10
	}
	// Bucket idles out after it could have fully refilled.
	ttl := int64(float64(capacity)/ratePerSec) + 60

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := buildRateKey(cfg.Prefix, jwtSecret, c)
			nowMS := time.Now().UnixMilli()

			res, err := tokenBucketScript.Run(ctx, rdb, []string{key},
				capacity, ratePerSec, nowMS, ttl).Slice()
			if err != nil || len(res) != 2 {
				return next(c)
			}

			allowed := asInt64(res[0])
			remaining := asInt64(res[1])

			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			if allowed != 1 {
				retryAfter := int64(1.0/ratePerSec) + 1
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		var out int64
		_, _ = fmt.Sscanf(n, "%d", &out)
		return out
	default:
		return 0
	}
}
