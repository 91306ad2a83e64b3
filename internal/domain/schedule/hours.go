package schedule

import "github.com/himsog/himsog-api/internal/models"

// DayWindow is the resolved operating window for one weekday.
type DayWindow struct {
	Open      bool   `json:"open"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// ResolveDay resolves the operating window for a weekday from the
// provider's configured rows. No row for the weekday, a closed flag, or
// blank times all mean closed.
func ResolveDay(rows []models.OperatingHours, weekday int) DayWindow {
	for _, oh := range rows {
		if oh.Weekday != weekday {
			continue
		}
		if oh.IsClosed || oh.StartTime == "" || oh.EndTime == "" {
			return DayWindow{}
		}
		return DayWindow{
			Open:      true,
			StartTime: oh.StartTime,
			EndTime:   oh.EndTime,
		}
	}
	return DayWindow{}
}

// OperatingDays returns the weekdays (0-6) the provider is not closed,
// ascending.
func OperatingDays(rows []models.OperatingHours) []int {
	var days []int
	for wd := 0; wd < 7; wd++ {
		if ResolveDay(rows, wd).Open {
			days = append(days, wd)
		}
	}
	return days
}
