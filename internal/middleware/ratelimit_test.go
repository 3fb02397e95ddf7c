package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetick/cinetick/internal/config"
	"github.com/cinetick/cinetick/internal/utils"
)

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	assert.Equal(t, "10.0.0.1", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.Header.Set("X-Forwarded-For", " 198.51.100.4 ")
	assert.Equal(t, "198.51.100.4", clientIP(req))
}

func TestBuildRateKeyScopesUserOverIP(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "rl:ip:10.0.0.1", buildRateKey("rl", testSecret, c))

	c.Set("user_id", uint64(99))
	assert.Equal(t, "rl:u:99", buildRateKey("rl", testSecret, c))
}

// The limiter runs before JWTAuth, so user scoping has to work from the
// Authorization header alone.
func TestBuildRateKeyScopesUserFromBearerToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	req.Header.Set("Authorization", "Bearer "+at.Token)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, "rl:u:42", buildRateKey("rl", testSecret, c))
}

func TestCurrentUserIDRejectsForgedToken(t *testing.T) {
	at, err := utils.NewAccessToken("another-secret", 42, "CUSTOMER", 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Zero(t, currentUserID(c, testSecret))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64(5))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64(3.5))
	assert.Equal(t, int64(0), asInt64(nil))
}

func TestRateLimiterDisabledIsPassThrough(t *testing.T) {
	e := echo.New()
	mw := NewRateLimiter(config.RateLimitConfig{Enabled: false}, nil, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}
