package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCinemaLocationFallbacks(t *testing.T) {
	h := &ShowtimeHandler{DefaultTZ: "Europe/Berlin"}

	loc := h.cinemaLocation("Asia/Tokyo")
	require.NotNil(t, loc)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	// Unknown zone falls back to the configured default.
	loc = h.cinemaLocation("Not/AZone")
	assert.Equal(t, "Europe/Berlin", loc.String())

	// Nothing usable configured falls back to UTC.
	h.DefaultTZ = ""
	assert.Equal(t, time.UTC, h.cinemaLocation(""))
}
