package validators

import "time"

// IsClockTime reports whether s is a well-formed "HH:MM" 24-hour string.
func IsClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsClockRange reports whether start and end are well-formed and ordered.
func IsClockRange(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return s.Before(e)
}
