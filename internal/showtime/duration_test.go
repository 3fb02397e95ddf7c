package showtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{
			name:  "hours and minutes",
			start: "2025-06-10 14:00:00",
			end:   "2025-06-10 16:15:00",
			want:  "2h 15m",
		},
		{
			name:  "day rollover",
			start: "2025-06-10T22:30:00",
			end:   "2025-06-11T00:15:00",
			want:  "1h 45m",
		},
		{
			name:  "under an hour",
			start: "2025-06-10 09:00:00",
			end:   "2025-06-10 09:45:00",
			want:  "45m",
		},
		{
			name:  "zero duration",
			start: "2025-06-10 09:00:00",
			end:   "2025-06-10 09:00:00",
			want:  "0m",
		},
		{
			name:  "exact hour",
			start: "2025-06-10 09:00:00",
			end:   "2025-06-10 11:00:00",
			want:  "2h 0m",
		},
		{
			name:  "rfc3339 inputs",
			start: "2025-06-10T09:00:00Z",
			end:   "2025-06-10T10:30:00Z",
			want:  "1h 30m",
		},
		{
			name:  "offset-qualified inputs",
			start: "2025-06-10 09:00:00+02:00",
			end:   "2025-06-10 09:00:00+01:00",
			want:  "1h 0m",
		},
		{
			name:  "end before start",
			start: "2025-06-10 12:00:00",
			end:   "2025-06-10 11:00:00",
			want:  InvalidDuration,
		},
		{
			name:  "malformed start",
			start: "not a timestamp",
			end:   "2025-06-10 11:00:00",
			want:  InvalidDuration,
		},
		{
			name:  "malformed end",
			start: "2025-06-10 11:00:00",
			end:   "",
			want:  InvalidDuration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.start, tt.end))
		})
	}
}
