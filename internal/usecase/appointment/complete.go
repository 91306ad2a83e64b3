package appointment

import (
	"context"

	"github.com/himsog/himsog-api/internal/audit"
	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/timezone"
)

type CompleteAppointment struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	providerID uint,
	actorID uint,
	appointmentID uint,
	activityNotes string,
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
	if err := schedule.Complete(ap, now, activityNotes); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ProviderID: providerID,
			UserID:     &actorID,
			Action:     "appointment_completed",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
