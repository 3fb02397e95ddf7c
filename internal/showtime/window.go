package showtime

import (
	"errors"
	"time"
)

// windowLayout is the wire format the showing-creation endpoint expects:
// a local timestamp suffixed with the zone's UTC offset at that instant.
const windowLayout = "2006-01-02 15:04:05-07:00"

// ErrInvalidWindow is returned when the supplied date, wall-clock time or
// duration cannot form a valid showing window.
var ErrInvalidWindow = errors.New("invalid showing window")

// Window holds the formatted start and end timestamps of a showing, ready to
// be persisted or handed to the showing-creation endpoint verbatim.
type Window struct {
	StartsAt string // e.g. "2025-01-01 23:50:00+01:00"
	EndsAt   string // e.g. "2025-01-02 00:10:00+01:00"
	Start    time.Time
	End      time.Time
}

// ShowingWindow computes the start and end instants of a showing from a
// calendar date, a wall-clock start time and a runtime in minutes, all
// interpreted in loc.  The zone is an explicit input on purpose: showing
// times must be anchored to the cinema's own timezone, never to whatever
// zone the administrator's machine happens to run in.
//
// The end instant is derived with real instant arithmetic, so rollover
// across day, month and year boundaries is handled by the time package. The
// UTC offset is resolved independently for the start and end instants, so a
// showing that straddles a DST transition carries two different offsets.
func ShowingWindow(year int, month time.Month, day, hour, minute, durationMin int, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return Window{}, ErrInvalidWindow
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || durationMin < 0 {
		return Window{}, ErrInvalidWindow
	}
	start := time.Date(year, month, day, hour, minute, 0, 0, loc)
	// time.Date normalizes out-of-range components (e.g. Feb 30); reject
	// inputs that did not round-trip instead of silently shifting the date.
	if start.Day() != day || start.Month() != month {
		return Window{}, ErrInvalidWindow
	}
	end := start.Add(time.Duration(durationMin) * time.Minute)
	return Window{
		StartsAt: start.Format(windowLayout),
		EndsAt:   end.Format(windowLayout),
		Start:    start,
		End:      end,
	}, nil
}
