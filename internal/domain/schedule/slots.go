package schedule

import "github.com/himsog/himsog-api/internal/models"

// User-facing reasons a slot is not bookable.
const (
	ReasonBooked       = "Already booked"
	ReasonBreakTime    = "Break time"
	ReasonPastTime     = "Past time"
	ReasonNotOperating = "Not operating"
)

// Slot is one candidate appointment start time. Computed fresh on every
// availability query, never persisted.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// GenerateSlots produces the ordered candidate slots for a day: starting
// at the window open time, stepping by slotDurationMin, keeping only slots
// whose full interval fits before closing. A slot whose interval touches
// any break is kept in the sequence but annotated unavailable.
//
// Pure function of its inputs; identical inputs yield identical output.
func GenerateSlots(window DayWindow, slotDurationMin int, breaks []models.BreakTime) []Slot {
	if !window.Open || slotDurationMin <= 0 {
		return nil
	}

	open, err := ParseClock(window.StartTime)
	if err != nil {
		return nil
	}
	closing, err := ParseClock(window.EndTime)
	if err != nil {
		return nil
	}
	if closing <= open {
		return nil
	}

	intervals := ClipBreaks(breaks, open, closing)

	var slots []Slot
	for cur := open; cur+slotDurationMin <= closing; cur += slotDurationMin {
		slot := Slot{Time: FormatClock(cur), Available: true}
		if overlapsAny(intervals, cur, cur+slotDurationMin) {
			slot.Available = false
			slot.Reason = ReasonBreakTime
		}
		slots = append(slots, slot)
	}
	return slots
}
