package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter22", 4) // minimum cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
	assert.False(t, VerifyPassword("not-a-hash", "hunter22"))
}
