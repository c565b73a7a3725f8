package youtube

import (
	"fmt"
	"time"
)

// ParseDuration parses the ISO 8601 durations the API returns, e.g. PT4M13S or P1DT2H.
// Only day, hour, minute and second designators are accepted.
func ParseDuration(value string) (time.Duration, error) {
	if len(value) < 2 || value[0] != 'P' {
		return 0, fmt.Errorf("invalid duration format: %q", value)
	}

	var (
		total    time.Duration
		num      int64
		hasNum   bool
		timePart bool
	)

	for _, ch := range value[1:] {
		switch {
		case ch >= '0' && ch <= '9':
			num = num*10 + int64(ch-'0')
			hasNum = true
			continue
		case ch == 'T':
			if timePart || hasNum {
				return 0, fmt.Errorf("invalid duration format: %q", value)
			}
			timePart = true
			continue
		}

		if !hasNum {
			return 0, fmt.Errorf("invalid duration format: %q", value)
		}

		var unit time.Duration
		switch {
		case ch == 'D' && !timePart:
			unit = 24 * time.Hour
		case ch == 'H' && timePart:
			unit = time.Hour
		case ch == 'M' && timePart:
			unit = time.Minute
		case ch == 'S' && timePart:
			unit = time.Second
		default:
			return 0, fmt.Errorf("invalid duration format: %q", value)
		}

		total += time.Duration(num) * unit
		num, hasNum = 0, false
	}

	if hasNum {
		return 0, fmt.Errorf("invalid duration format: %q", value)
	}
	return total, nil
}
