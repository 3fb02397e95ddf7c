package showtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowingWindow_DateRollover(t *testing.T) {
	w, err := ShowingWindow(2025, time.January, 1, 23, 50, 20, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01 23:50:00+00:00", w.StartsAt)
	assert.Equal(t, "2025-01-02 00:10:00+00:00", w.EndsAt)
}

func TestShowingWindow_YearRollover(t *testing.T) {
	w, err := ShowingWindow(2025, time.December, 31, 23, 30, 90, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31 23:30:00+00:00", w.StartsAt)
	assert.Equal(t, "2026-01-01 01:00:00+00:00", w.EndsAt)
}

func TestShowingWindow_CarriesZoneOffset(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	w, err := ShowingWindow(2025, time.June, 10, 20, 0, 120, berlin)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10 20:00:00+02:00", w.StartsAt)
	assert.Equal(t, "2025-06-10 22:00:00+02:00", w.EndsAt)
}

func TestShowingWindow_DSTStraddle(t *testing.T) {
	// Berlin springs forward 2025-03-30 at 02:00 CET -> 03:00 CEST.  A late
	// showing that crosses the transition must carry a different offset on
	// each side.
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	w, err := ShowingWindow(2025, time.March, 30, 1, 30, 60, berlin)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-30 01:30:00+01:00", w.StartsAt)
	assert.Equal(t, "2025-03-30 03:30:00+02:00", w.EndsAt)
}

func TestShowingWindow_ZeroDuration(t *testing.T) {
	w, err := ShowingWindow(2025, time.June, 10, 9, 0, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, w.StartsAt, w.EndsAt)
}

func TestShowingWindow_RejectsInvalidInputs(t *testing.T) {
	tests := []struct {
		name                              string
		month                             time.Month
		day, hour, minute, durationMin int
	}{
		{name: "impossible day", month: time.February, day: 30, hour: 12},
		{name: "hour out of range", month: time.June, day: 10, hour: 24},
		{name: "minute out of range", month: time.June, day: 10, hour: 12, minute: 60},
		{name: "negative duration", month: time.June, day: 10, hour: 12, durationMin: -5},
		{name: "month out of range", month: 13, day: 1, hour: 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ShowingWindow(2025, tt.month, tt.day, tt.hour, tt.minute, tt.durationMin, time.UTC)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestShowingWindow_NilLocationFallsBackToLocal(t *testing.T) {
	w, err := ShowingWindow(2025, time.June, 10, 9, 0, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, w.End.Sub(w.Start))
}
