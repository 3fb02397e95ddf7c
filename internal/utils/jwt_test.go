package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenCarriesClaims(t *testing.T) {
	const secret = "test-secret"

	at, err := NewAccessToken(secret, 42, "ADMIN", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "ADMIN", claims["role"])
}

func TestNewAccessTokenRejectsWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "CUSTOMER", 5)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshTokenIsUniqueAndLong(t *testing.T) {
	a, err := NewRefreshToken(7)
	require.NoError(t, err)
	b, err := NewRefreshToken(7)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96) // 48 random bytes hex encoded
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), a.Exp, 5*time.Second)
}

func TestHashRefreshRawDeterministic(t *testing.T) {
	assert.Equal(t, HashRefreshRaw("abc"), HashRefreshRaw("abc"))
	assert.NotEqual(t, HashRefreshRaw("abc"), HashRefreshRaw("abd"))
	assert.Len(t, HashRefreshRaw("abc"), 64) // sha256 hex
}
