// Package handler contains the HTTP endpoint implementations.  Handlers
// bind request bodies, call repositories and the pure transform packages,
// and translate sentinel errors into HTTP statuses.
package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// userID returns the authenticated user's numeric ID, zero when absent.
func userID(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// userRole returns the authenticated user's role claim, empty when absent.
func userRole(c echo.Context) string {
	if v, ok := c.Get("role").(string); ok {
		return v
	}
	return ""
}
