package appointment

import (
	"context"
	"encoding/json"
	"time"

	"github.com/himsog/himsog-api/internal/cache"
	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/timezone"
)

type GetAvailability struct {
	repo  schedule.Repository
	cache *cache.AvailabilityCache
	nowFn func(tz string) time.Time
}

func NewGetAvailability(
	repo schedule.Repository,
	c *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: c,
		nowFn: timezone.NowIn,
	}
}

// NewGetAvailabilityWithClock allows injecting the clock for tests.
func NewGetAvailabilityWithClock(
	repo schedule.Repository,
	c *cache.AvailabilityCache,
	nowFn func(tz string) time.Time,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: c,
		nowFn: nowFn,
	}
}

// Execute answers the availability query, serving from the cache when a
// fresh enough copy exists.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in schedule.AvailabilityInput,
) (*schedule.AvailabilityResult, error) {

	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	dateStr := in.Date.Format("2006-01-02")

	if payload, ok := uc.cache.Get(ctx, provider.ID, dateStr); ok {
		var result schedule.AvailabilityResult
		if err := json.Unmarshal(payload, &result); err == nil {
			return &result, nil
		}
	}

	result, err := uc.compute(ctx, provider, in.Date)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		uc.cache.Set(ctx, provider.ID, dateStr, payload)
	}

	return result, nil
}

// Fresh recomputes availability bypassing the cache. The booking
// transaction must never trust a cached (or client-supplied) view.
func (uc *GetAvailability) Fresh(
	ctx context.Context,
	in schedule.AvailabilityInput,
) (*schedule.AvailabilityResult, error) {

	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	return uc.compute(ctx, provider, in.Date)
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	provider *models.Provider,
	date time.Time,
) (*schedule.AvailabilityResult, error) {

	loc := timezone.Location(provider.Timezone)
	weekday := int(date.Weekday())

	result := &schedule.AvailabilityResult{
		Date:       date.Format("2006-01-02"),
		BreakTimes: []schedule.BreakTimeView{},
		TimeSlots:  []schedule.Slot{},
	}

	rows, err := uc.repo.ListOperatingHours(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	window := schedule.ResolveDay(rows, weekday)
	if !window.Open {
		return result, nil
	}
	result.IsOperating = true
	result.OperatingHours = &window

	breaks, err := uc.repo.ListBreakTimes(ctx, provider.ID, weekday)
	if err != nil {
		return nil, err
	}
	for _, bt := range breaks {
		result.BreakTimes = append(result.BreakTimes, schedule.BreakTimeView{
			Name:      bt.Name,
			StartTime: bt.StartTime,
			EndTime:   bt.EndTime,
		})
	}

	slots := schedule.GenerateSlots(window, provider.SlotDurationMin, breaks)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, provider.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn(provider.Timezone)
	result.TimeSlots = schedule.FilterAvailability(
		slots,
		provider.SlotDurationMin,
		appointments,
		dayStart,
		now,
	)

	return result, nil
}
