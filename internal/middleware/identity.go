package middleware

// identity.go provides the user extraction shared across middleware files.
// Middleware installed ahead of JWTAuth (the rate limiter runs on every
// route) cannot rely on the context keys JWTAuth sets, so the helper falls
// back to verifying the bearer token itself.

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// currentUserID resolves the authenticated user id. It prefers the identity
// JWTAuth already stored in context and otherwise verifies the Authorization
// header with the issuing secret. Zero means anonymous.
func currentUserID(c echo.Context, secret string) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}

	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return 0
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0
	}
	return uint64(sub)
}
