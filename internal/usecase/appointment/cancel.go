package appointment

import (
	"context"

	"github.com/himsog/himsog-api/internal/audit"
	"github.com/himsog/himsog-api/internal/cache"
	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/notify"
	"github.com/himsog/himsog-api/internal/timezone"
)

type CancelAppointment struct {
	repo   schedule.Repository
	cache  *cache.AvailabilityCache
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewCancelAppointment(
	repo schedule.Repository,
	c *cache.AvailabilityCache,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		cache:  c,
		notify: notifier,
		audit:  auditor,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	providerID uint,
	actorID uint,
	appointmentID uint,
	reason string,
	cancelledBy string,
) (*models.Appointment, error) {

	provider, err := uc.repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForProvider(ctx, appointmentID, providerID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(provider.Timezone)
	if err := schedule.Cancel(ap, now, reason, cancelledBy); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// the cancelled window is bookable again
	loc := timezone.Location(provider.Timezone)
	uc.cache.InvalidateDay(ctx, provider.ID, ap.StartTime.In(loc).Format("2006-01-02"))

	if uc.notify != nil {
		uc.notify.Dispatch(notify.Event{
			UserID:        ap.UserID,
			Type:          notify.TypeAppointmentCancelled,
			Title:         "Appointment cancelled",
			Body:          reason,
			AppointmentID: &ap.ID,
		})
	}
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ProviderID: providerID,
			UserID:     &actorID,
			Action:     "appointment_cancelled",
			Entity:     "appointment",
			EntityID:   &ap.ID,
			Metadata:   map[string]any{"reason": reason, "cancelled_by": cancelledBy},
		})
	}

	return ap, nil
}
