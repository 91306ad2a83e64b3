package appointment

import (
	"context"

	"github.com/himsog/himsog-api/internal/audit"
	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/models"
)

type MarkNoShow struct {
	repo  schedule.Repository
	audit *audit.Dispatcher
}

func NewMarkNoShow(
	repo schedule.Repository,
	auditor *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	providerID uint,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProvider(ctx, appointmentID, providerID)
	if err != nil {
		return nil, err
	}

	if err := schedule.MarkNoShow(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ProviderID: providerID,
			UserID:     &actorID,
			Action:     "appointment_no_show",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
