package schedule

import "github.com/himsog/himsog-api/internal/models"

// BreakInterval is a break clipped to the day's operating window, in
// minutes from midnight.
type BreakInterval struct {
	Name  string
	Start int
	End   int
}

// ClipBreaks converts configured break rows to intervals inside
// [openMin, closeMin). Nothing enforces containment at write time, so
// out-of-range breaks are clipped here and breaks that clip to nothing
// (or are inverted) are dropped. Overlapping breaks pass through as-is.
func ClipBreaks(breaks []models.BreakTime, openMin, closeMin int) []BreakInterval {
	out := make([]BreakInterval, 0, len(breaks))
	for _, bt := range breaks {
		start, err := ParseClock(bt.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseClock(bt.EndTime)
		if err != nil {
			continue
		}

		if start < openMin {
			start = openMin
		}
		if end > closeMin {
			end = closeMin
		}
		if start >= end {
			continue
		}

		out = append(out, BreakInterval{Name: bt.Name, Start: start, End: end})
	}
	return out
}

func overlapsAny(intervals []BreakInterval, start, end int) bool {
	for _, iv := range intervals {
		if start < iv.End && end > iv.Start {
			return true
		}
	}
	return false
}
