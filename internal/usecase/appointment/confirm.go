package appointment

import (
	"context"

	"github.com/himsog/himsog-api/internal/audit"
	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/notify"
)

type ConfirmAppointment struct {
	repo   schedule.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewConfirmAppointment(
	repo schedule.Repository,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:   repo,
		notify: notifier,
		audit:  auditor,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	providerID uint,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProvider(ctx, appointmentID, providerID)
	if err != nil {
		return nil, err
	}

	if err := schedule.Confirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if uc.notify != nil {
		uc.notify.Dispatch(notify.Event{
			UserID:        ap.UserID,
			Type:          notify.TypeAppointmentConfirmed,
			Title:         "Appointment confirmed",
			Body:          "Your appointment on " + ap.StartTime.Format("2006-01-02 15:04") + " was confirmed.",
			AppointmentID: &ap.ID,
		})
	}
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ProviderID: providerID,
			UserID:     &actorID,
			Action:     "appointment_confirmed",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
