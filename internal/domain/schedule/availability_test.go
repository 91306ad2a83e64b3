package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himsog/himsog-api/internal/models"
)

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	return loc
}

func appointmentAt(dayStart time.Time, startMin, endMin int) models.Appointment {
	return models.Appointment{
		StartTime: dayStart.Add(time.Duration(startMin) * time.Minute),
		EndTime:   dayStart.Add(time.Duration(endMin) * time.Minute),
		Status:    string(StatusConfirmed),
	}
}

func TestFilterAvailability_BookedSlots(t *testing.T) {
	loc := manila(t)
	dayStart := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc) // different day, no past-time

	slots := GenerateSlots(DayWindow{Open: true, StartTime: "09:00", EndTime: "12:00"}, 30, nil)
	appointments := []models.Appointment{
		appointmentAt(dayStart, 10*60, 10*60+30),
	}

	got := FilterAvailability(slots, 30, appointments, dayStart, now)
	require.Len(t, got, 6)

	for _, s := range got {
		if s.Time == "10:00" {
			assert.False(t, s.Available)
			assert.Equal(t, ReasonBooked, s.Reason)
		} else {
			assert.True(t, s.Available, "slot %s should stay open", s.Time)
		}
	}
}

func TestFilterAvailability_LongAppointmentBlocksEveryOverlappingSlot(t *testing.T) {
	loc := manila(t)
	dayStart := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	slots := GenerateSlots(DayWindow{Open: true, StartTime: "09:00", EndTime: "12:00"}, 30, nil)
	// 09:45-11:10 spans four slot intervals
	appointments := []models.Appointment{
		appointmentAt(dayStart, 9*60+45, 11*60+10),
	}

	got := FilterAvailability(slots, 30, appointments, dayStart, now)

	blocked := map[string]bool{"09:30": true, "10:00": true, "10:30": true, "11:00": true}
	for _, s := range got {
		if blocked[s.Time] {
			assert.Equal(t, ReasonBooked, s.Reason, "slot %s", s.Time)
		} else {
			assert.True(t, s.Available, "slot %s", s.Time)
		}
	}
}

func TestFilterAvailability_PastTimeSameDay(t *testing.T) {
	loc := manila(t)
	dayStart := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, 9, 7, 10, 15, 0, 0, loc)

	slots := GenerateSlots(DayWindow{Open: true, StartTime: "09:00", EndTime: "12:00"}, 30, nil)
	got := FilterAvailability(slots, 30, nil, dayStart, now)

	past := map[string]bool{"09:00": true, "09:30": true, "10:00": true}
	for _, s := range got {
		if past[s.Time] {
			assert.Equal(t, ReasonPastTime, s.Reason, "slot %s", s.Time)
		} else {
			assert.True(t, s.Available, "slot %s", s.Time)
		}
	}
}

func TestFilterAvailability_SlotStartingExactlyNowIsPast(t *testing.T) {
	loc := manila(t)
	dayStart := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, loc)

	slots := GenerateSlots(DayWindow{Open: true, StartTime: "10:00", EndTime: "11:00"}, 30, nil)
	got := FilterAvailability(slots, 30, nil, dayStart, now)

	require.Len(t, got, 2)
	assert.Equal(t, ReasonPastTime, got[0].Reason)
	assert.True(t, got[1].Available)
}

func TestFilterAvailability_BookedBeatsPast(t *testing.T) {
	loc := manila(t)
	dayStart := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, 9, 7, 11, 0, 0, 0, loc)

	slots := GenerateSlots(DayWindow{Open: true, StartTime: "09:00", EndTime: "12:00"}, 30, nil)
	appointments := []models.Appointment{
		appointmentAt(dayStart, 9*60+30, 10*60),
	}

	got := FilterAvailability(slots, 30, appointments, dayStart, now)

	for _, s := range got {
		if s.Time == "09:30" {
			assert.Equal(t, ReasonBooked, s.Reason)
		}
	}
}

func TestFilterAvailability_BreakBeatsBooked(t *testing.T) {
	loc := manila(t)
	dayStart := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	breaks := []models.BreakTime{{Name: "Lunch", StartTime: "12:00", EndTime: "13:00"}}
	slots := GenerateSlots(DayWindow{Open: true, StartTime: "09:00", EndTime: "17:00"}, 30, breaks)

	// stray row overlapping the break, e.g. booked before the break was added
	appointments := []models.Appointment{
		appointmentAt(dayStart, 12*60, 12*60+30),
	}

	got := FilterAvailability(slots, 30, appointments, dayStart, now)

	for _, s := range got {
		if s.Time == "12:00" || s.Time == "12:30" {
			assert.Equal(t, ReasonBreakTime, s.Reason, "slot %s", s.Time)
		}
	}
}

func TestFilterAvailability_DoesNotMutateInput(t *testing.T) {
	loc := manila(t)
	dayStart := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	now := time.Date(2026, 9, 7, 23, 0, 0, 0, loc)

	slots := GenerateSlots(DayWindow{Open: true, StartTime: "09:00", EndTime: "10:00"}, 30, nil)
	require.True(t, slots[0].Available)

	_ = FilterAvailability(slots, 30, nil, dayStart, now)

	assert.True(t, slots[0].Available, "caller's slice must stay untouched")
	assert.Empty(t, slots[0].Reason)
}
