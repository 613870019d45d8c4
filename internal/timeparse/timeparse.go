package timeparse

import "time"

// Provider timestamp formats, most specific first. Providers are
// inconsistent about offsets, so every plausible shape is tried in order.
var formats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTimestamp parses a provider timestamp. Timestamps without an offset
// keep their wall clock as-is; the engine compares provider-local clocks and
// never converts between zones.
func ParseTimestamp(s string) (time.Time, error) {
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{
		Value:   s,
		Message: "unable to parse time string",
	}
}

// MinutesOfDay returns the wall-clock minute of day of t.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClock parses an "HH:MM" string into a minute of day.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return MinutesOfDay(t), nil
}
