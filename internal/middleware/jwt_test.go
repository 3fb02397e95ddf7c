package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinetick/cinetick/internal/utils"
)

const testSecret = "unit-test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string, inspect func(echo.Context)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		if inspect != nil {
			inspect(c)
		}
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "CUSTOMER", 5)
	require.NoError(t, err)

	var gotID uint64
	var gotRole string
	rec := doRequest(t, JWTAuth(testSecret), "Bearer "+at.Token, func(c echo.Context) {
		gotID, _ = c.Get("user_id").(uint64)
		gotRole, _ = c.Get("role").(string)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(7), gotID)
	assert.Equal(t, "CUSTOMER", gotRole)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec := doRequest(t, JWTAuth(testSecret), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("another-secret", 7, "CUSTOMER", 5)
	require.NoError(t, err)

	rec := doRequest(t, JWTAuth(testSecret), "Bearer "+at.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role string, allowed ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != "" {
			c.Set("role", role)
		}
		h := RequireRole(allowed...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run("ADMIN", "ADMIN"))
	assert.Equal(t, http.StatusOK, run("CUSTOMER", "CUSTOMER", "ADMIN"))
	assert.Equal(t, http.StatusForbidden, run("CUSTOMER", "ADMIN"))
	assert.Equal(t, http.StatusForbidden, run("", "ADMIN"))
}
