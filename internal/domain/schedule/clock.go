package schedule

import (
	"fmt"
	"time"
)

// Wall-clock times in schedule configuration are "HH:MM" strings in the
// provider's local convention. The engine works in minutes-from-midnight
// and only touches absolute timestamps at the appointment boundary.

func ParseClock(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
