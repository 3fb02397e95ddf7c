package showtime

import (
	"fmt"
	"time"
)

// InvalidDuration is rendered whenever a duration cannot be computed: one of
// the timestamps failed to parse or the end precedes the start.  Screens show
// the placeholder and keep rendering instead of failing the whole response.
const InvalidDuration = "--"

// durationLayouts are the timestamp shapes accepted by FormatDuration, tried
// in order.  The backend stores "2006-01-02 15:04:05" but older rows and
// API-supplied values may carry an RFC3339 form with an explicit offset.
var durationLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseInstant tries each accepted layout and reports whether any matched.
// Layouts without an offset are interpreted as UTC so that spans computed
// from two offset-less values stay consistent.
func parseInstant(s string) (time.Time, bool) {
	for _, layout := range durationLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDuration renders the elapsed time between two timestamp strings as
// "<H>h <M>m", dropping the hour part entirely when it is zero ("45m", "0m").
// A timestamp that fails to parse, or an end before the start, yields
// InvalidDuration; the result is never a negative or nonsensical value.
func FormatDuration(start, end string) string {
	s, ok := parseInstant(start)
	if !ok {
		return InvalidDuration
	}
	e, ok := parseInstant(end)
	if !ok {
		return InvalidDuration
	}
	d := e.Sub(s)
	if d < 0 {
		return InvalidDuration
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	if hours >= 1 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
