package timeparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "rfc3339 utc", input: "2026-09-10T08:15:00Z", hour: 8, minute: 15},
		{name: "rfc3339 with offset", input: "2026-09-10T08:15:00+07:00", hour: 8, minute: 15},
		{name: "no offset", input: "2026-09-10T18:05:00", hour: 18, minute: 5},
		{name: "space separator", input: "2026-09-10 12:40:00", hour: 12, minute: 40},
		{name: "no seconds", input: "2026-09-10T23:59", hour: 23, minute: 59},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, parsed.Hour())
			assert.Equal(t, tt.minute, parsed.Minute())
		})
	}
}

// An offset timestamp keeps its local wall clock; comparisons happen in
// provider-local time, never after zone conversion.
func TestParseTimestampPreservesWallClock(t *testing.T) {
	parsed, err := ParseTimestamp("2026-09-10T08:15:00+07:00")
	require.NoError(t, err)
	assert.Equal(t, 495, MinutesOfDay(parsed))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "06:30", want: 390},
		{input: "23:59", want: 1439},
		{input: "9:00", want: 540},
		{input: "24:00", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
