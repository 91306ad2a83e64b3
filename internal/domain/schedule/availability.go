package schedule

import (
	"time"

	"github.com/himsog/himsog-api/internal/models"
)

// FilterAvailability annotates candidate slots against existing
// appointments and the clock. appointments must be the provider's
// pending/confirmed rows for the day, sorted by start time ascending.
// dayStart is midnight of the queried date in the provider's location;
// now is injected rather than read from a global clock.
//
// Precedence: a break slot stays "Break time" regardless of booking
// state; a booked slot in the past reports "Already booked" (the stronger
// business fact) rather than "Past time". Read-only: inputs are never
// mutated.
func FilterAvailability(
	slots []Slot,
	slotDurationMin int,
	appointments []models.Appointment,
	dayStart time.Time,
	now time.Time,
) []Slot {

	local := now.In(dayStart.Location())
	sameDay := local.Year() == dayStart.Year() &&
		local.Month() == dayStart.Month() &&
		local.Day() == dayStart.Day()

	out := make([]Slot, len(slots))
	copy(out, slots)

	apIdx := 0

	for i := range out {
		if out[i].Reason == ReasonBreakTime {
			continue
		}

		minutes, err := ParseClock(out[i].Time)
		if err != nil {
			continue
		}
		slotStart := dayStart.Add(time.Duration(minutes) * time.Minute)
		slotEnd := slotStart.Add(time.Duration(slotDurationMin) * time.Minute)

		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		booked := false
		for j := apIdx; j < len(appointments); j++ {
			ap := appointments[j]
			if !ap.StartTime.Before(slotEnd) {
				break
			}
			if slotStart.Before(ap.EndTime) && slotEnd.After(ap.StartTime) {
				booked = true
				break
			}
		}

		switch {
		case booked:
			out[i].Available = false
			out[i].Reason = ReasonBooked
		case sameDay && !slotStart.After(now):
			out[i].Available = false
			out[i].Reason = ReasonPastTime
		}
	}

	return out
}
