package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/models"
)

// 2026-09-07 is a Monday.
func mondayUTC() time.Time {
	return time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
}

func TestGetAvailability_OperatingDay(t *testing.T) {
	repo := newFakeRepo()
	providerID := seedProvider(repo)

	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	uc := NewGetAvailabilityWithClock(repo, nil, fixedClock(now))

	result, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		ProviderID: providerID,
		Date:       mondayUTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-07", result.Date)
	assert.True(t, result.IsOperating)
	require.NotNil(t, result.OperatingHours)
	assert.Equal(t, "09:00", result.OperatingHours.StartTime)

	require.Len(t, result.BreakTimes, 1)
	assert.Equal(t, "Lunch", result.BreakTimes[0].Name)

	// 09:00-17:00 at 30min minus nothing: 16 slots, lunch annotated
	require.Len(t, result.TimeSlots, 16)

	var lunch int
	for _, s := range result.TimeSlots {
		if s.Reason == schedule.ReasonBreakTime {
			lunch++
		}
	}
	assert.Equal(t, 2, lunch)
}

func TestGetAvailability_ClosedDay(t *testing.T) {
	repo := newFakeRepo()
	providerID := seedProvider(repo)

	uc := NewGetAvailabilityWithClock(repo, nil, fixedClock(time.Now()))

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	result, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		ProviderID: providerID,
		Date:       sunday,
	})
	require.NoError(t, err)

	assert.False(t, result.IsOperating)
	assert.Nil(t, result.OperatingHours)
	assert.Empty(t, result.TimeSlots)
	assert.NotNil(t, result.TimeSlots, "closed days serialize an empty list, not null")
}

func TestGetAvailability_ReflectsBookedAppointments(t *testing.T) {
	repo := newFakeRepo()
	providerID := seedProvider(repo)

	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	repo.appointments = append(repo.appointments, models.Appointment{
		ID:         99,
		ProviderID: providerID,
		StartTime:  time.Date(2026, 9, 7, 10, 0, 0, 0, loc),
		EndTime:    time.Date(2026, 9, 7, 10, 30, 0, 0, loc),
		Status:     string(schedule.StatusConfirmed),
	})

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)
	uc := NewGetAvailabilityWithClock(repo, nil, fixedClock(now))

	result, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		ProviderID: providerID,
		Date:       mondayUTC(),
	})
	require.NoError(t, err)

	for _, s := range result.TimeSlots {
		if s.Time == "10:00" {
			assert.False(t, s.Available)
			assert.Equal(t, schedule.ReasonBooked, s.Reason)
		}
	}
}

func TestGetAvailability_CancelledAppointmentFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	providerID := seedProvider(repo)

	loc, err := time.LoadLocation("Asia/Manila")
	require.NoError(t, err)

	repo.appointments = append(repo.appointments, models.Appointment{
		ID:         99,
		ProviderID: providerID,
		StartTime:  time.Date(2026, 9, 7, 10, 0, 0, 0, loc),
		EndTime:    time.Date(2026, 9, 7, 10, 30, 0, 0, loc),
		Status:     string(schedule.StatusCancelled),
	})

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)
	uc := NewGetAvailabilityWithClock(repo, nil, fixedClock(now))

	result, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		ProviderID: providerID,
		Date:       mondayUTC(),
	})
	require.NoError(t, err)

	for _, s := range result.TimeSlots {
		if s.Time == "10:00" {
			assert.True(t, s.Available)
		}
	}
}

func TestGetAvailability_UnknownProvider(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailabilityWithClock(repo, nil, fixedClock(time.Now()))

	_, err := uc.Execute(context.Background(), schedule.AvailabilityInput{
		ProviderID: 42,
		Date:       mondayUTC(),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsNotFound(err))
}
