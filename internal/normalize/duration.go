package normalize

import "strconv"

// ParseISODuration parses "PT#H#M"-style provider durations into minutes.
// Hours and minutes are independent and either may be absent; a day
// component ("P1DT2H") is accepted. Returns false for unparsable or empty
// input.
func ParseISODuration(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	i := 0
	if s[i] == 'P' || s[i] == 'p' {
		i++
	} else {
		return 0, false
	}

	minutes := 0
	sawComponent := false
	for i < len(s) {
		if s[i] == 'T' || s[i] == 't' {
			i++
			continue
		}

		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if start == i || i == len(s) {
			return 0, false
		}
		n, err := strconv.Atoi(s[start:i])
		if err != nil {
			return 0, false
		}

		switch s[i] {
		case 'D', 'd':
			minutes += n * 24 * 60
		case 'H', 'h':
			minutes += n * 60
		case 'M', 'm':
			minutes += n
		case 'S', 's':
			// Sub-minute precision is dropped.
		default:
			return 0, false
		}
		sawComponent = true
		i++
	}

	if !sawComponent {
		return 0, false
	}
	return minutes, true
}

// FormatMinutes renders a minute count for display: 90 → "1h 30min",
// 60 → "1h", 45 → "45min".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "min"
	case hours > 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(mins) + "min"
	}
}

// FormatMinutesRange renders a variable duration as "<min> - <max>" using
// the same hour/minute formatting, e.g. "1h - 2h 30min".
func FormatMinutesRange(min, max int) string {
	return FormatMinutes(min) + " - " + FormatMinutes(max)
}
