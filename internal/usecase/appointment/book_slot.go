package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/himsog/himsog-api/internal/audit"
	"github.com/himsog/himsog-api/internal/cache"
	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/notify"
	"github.com/himsog/himsog-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookSlotInput struct {
	ProviderID uint
	UserID     *uint

	ServiceIDs []uint

	Date string // YYYY-MM-DD, provider-local
	Time string // HH:MM, provider-local

	PatientName  string
	PatientEmail string
	PatientPhone string
	Notes        string
}

// ======================================================
// USE CASE
// ======================================================

type BookSlot struct {
	repo         schedule.Repository
	availability *GetAvailability
	cache        *cache.AvailabilityCache
	notify       *notify.Dispatcher
	audit        *audit.Dispatcher
}

func NewBookSlot(
	repo schedule.Repository,
	availability *GetAvailability,
	c *cache.AvailabilityCache,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *BookSlot {
	return &BookSlot{
		repo:         repo,
		availability: availability,
		cache:        c,
		notify:       notifier,
		audit:        auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books a slot. Availability is recomputed server-side at call
// time; the client's earlier read is never trusted. The insert itself
// re-checks for conflicts inside one transaction, so two simultaneous
// bookings of the same slot produce exactly one success.
func (uc *BookSlot) Execute(
	ctx context.Context,
	in BookSlotInput,
) (*models.Appointment, error) {

	if in.PatientName == "" {
		return nil, httperr.ValidationError{Field: "patient_name", Message: "required"}
	}
	if in.PatientEmail == "" {
		return nil, httperr.ValidationError{Field: "patient_email", Message: "required"}
	}
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ValidationError{Field: "services", Message: "select at least one service"}
	}

	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider.SlotDurationMin <= 0 {
		return nil, httperr.ValidationError{Field: "slot_duration", Message: "provider has no slot duration configured"}
	}

	loc := timezone.Location(provider.Timezone)

	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ValidationError{Field: "date", Message: "invalid date"}
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ValidationError{Field: "time", Message: "invalid time"}
	}

	avail, err := uc.availability.Fresh(ctx, schedule.AvailabilityInput{
		ProviderID: provider.ID,
		Date:       date,
	})
	if err != nil {
		return nil, err
	}

	if !avail.IsOperating {
		return nil, httperr.SlotUnavailableError{Reason: schedule.ReasonNotOperating}
	}

	var chosen *schedule.Slot
	for i := range avail.TimeSlots {
		if avail.TimeSlots[i].Time == in.Time {
			chosen = &avail.TimeSlots[i]
			break
		}
	}
	if chosen == nil {
		return nil, httperr.ValidationError{Field: "time", Message: "not on the provider's slot grid"}
	}
	if !chosen.Available {
		return nil, httperr.SlotUnavailableError{Reason: chosen.Reason}
	}

	services, err := uc.repo.ListServicesByIDs(ctx, provider.ID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.NotFoundError{Resource: "service"}
	}

	var total float64
	snapshots := make([]models.AppointmentService, 0, len(services))
	for _, svc := range services {
		total += svc.Price
		snapshots = append(snapshots, models.AppointmentService{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Price:     svc.Price,
		})
	}

	end := start.Add(time.Duration(provider.SlotDurationMin) * time.Minute)

	ap := &models.Appointment{
		Reference:    uuid.NewString(),
		ProviderID:   provider.ID,
		UserID:       in.UserID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(schedule.InitialStatus()),
		TotalPrice:   total,
		PatientName:  in.PatientName,
		PatientEmail: in.PatientEmail,
		PatientPhone: in.PatientPhone,
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap, snapshots); err != nil {
		return nil, err
	}
	ap.Services = snapshots

	uc.cache.InvalidateDay(ctx, provider.ID, in.Date)

	// best effort; a lost notification never rolls back the booking
	if uc.notify != nil {
		providerID := provider.ID
		uc.notify.Dispatch(notify.Event{
			ProviderID:    &providerID,
			UserID:        in.UserID,
			Type:          notify.TypeAppointmentCreated,
			Title:         "New appointment request",
			Body:          in.PatientName + " requested " + in.Date + " " + in.Time,
			AppointmentID: &ap.ID,
		})
	}
	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			ProviderID: provider.ID,
			UserID:     in.UserID,
			Action:     "appointment_created",
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
