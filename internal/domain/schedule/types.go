package schedule

import "time"

type AvailabilityInput struct {
	ProviderID uint
	Date       time.Time
}

type BreakTimeView struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityResult is the availability query response consumed by the
// booking UI.
type AvailabilityResult struct {
	Date           string          `json:"date"`
	IsOperating    bool            `json:"is_operating"`
	OperatingHours *DayWindow      `json:"operating_hours,omitempty"`
	BreakTimes     []BreakTimeView `json:"break_times"`
	TimeSlots      []Slot          `json:"time_slots"`
}
