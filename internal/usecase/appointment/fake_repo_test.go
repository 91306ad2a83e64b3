package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/models"
)

// fakeRepo is an in-memory schedule.Repository. Writes go through a
// mutex and CreateAppointment re-checks conflicts under it, mirroring
// the locked re-check the real repository does inside its transaction.
type fakeRepo struct {
	mu sync.Mutex

	providers      map[uint]models.Provider
	services       map[uint]models.Service
	operatingHours []models.OperatingHours
	breakTimes     []models.BreakTime
	appointments   []models.Appointment

	nextID uint
}

var _ schedule.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		providers: map[uint]models.Provider{},
		services:  map[uint]models.Service{},
		nextID:    1,
	}
}

func (f *fakeRepo) GetProviderByID(_ context.Context, id uint) (*models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.providers[id]
	if !ok {
		return nil, httperr.NotFoundError{Resource: "provider"}
	}
	return &p, nil
}

func (f *fakeRepo) GetProviderBySlug(_ context.Context, slug string) (*models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.providers {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, httperr.NotFoundError{Resource: "provider"}
}

func (f *fakeRepo) ListServicesByIDs(_ context.Context, providerID uint, serviceIDs []uint) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Service
	for _, id := range serviceIDs {
		if svc, ok := f.services[id]; ok && svc.ProviderID == providerID && svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOperatingHours(_ context.Context, providerID uint) ([]models.OperatingHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.OperatingHours
	for _, oh := range f.operatingHours {
		if oh.ProviderID == providerID {
			out = append(out, oh)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBreakTimes(_ context.Context, providerID uint, weekday int) ([]models.BreakTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.BreakTime
	for _, bt := range f.breakTimes {
		if bt.ProviderID == providerID && bt.Weekday == weekday {
			out = append(out, bt)
		}
	}
	return out, nil
}

func blocking(status string) bool {
	return status == string(schedule.StatusPending) || status == string(schedule.StatusConfirmed)
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, providerID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProviderID != providerID || !blocking(ap.Status) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, providerID uint, start, end time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProviderID != providerID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out, nil
}

func sortAppointments(aps []models.Appointment) {
	for i := 1; i < len(aps); i++ {
		for j := i; j > 0 && aps[j].StartTime.Before(aps[j-1].StartTime); j-- {
			aps[j], aps[j-1] = aps[j-1], aps[j]
		}
	}
}

func (f *fakeRepo) GetAppointmentForProvider(_ context.Context, appointmentID, providerID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.appointments {
		if f.appointments[i].ID == appointmentID && f.appointments[i].ProviderID == providerID {
			cp := f.appointments[i]
			return &cp, nil
		}
	}
	return nil, httperr.NotFoundError{Resource: "appointment"}
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment, services []models.AppointmentService) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.appointments {
		if existing.ProviderID != ap.ProviderID || !blocking(existing.Status) {
			continue
		}
		if ap.StartTime.Before(existing.EndTime) && ap.EndTime.After(existing.StartTime) {
			return httperr.SlotUnavailableError{Reason: schedule.ReasonBooked}
		}
	}

	ap.ID = f.nextID
	f.nextID++

	for i := range services {
		services[i].AppointmentID = ap.ID
	}

	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return httperr.NotFoundError{Resource: "appointment"}
}

// seedProvider installs a provider open Mon-Fri 09:00-17:00 with a lunch
// break and two services. Returns the provider ID.
func seedProvider(f *fakeRepo) uint {
	const id = 1

	f.providers[id] = models.Provider{
		ID:              id,
		Name:            "Himsog Dental Clinic",
		Slug:            "himsog-dental",
		Timezone:        "Asia/Manila",
		SlotDurationMin: 30,
	}

	for wd := 1; wd <= 5; wd++ {
		f.operatingHours = append(f.operatingHours, models.OperatingHours{
			ProviderID: id,
			Weekday:    wd,
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
	}
	f.operatingHours = append(f.operatingHours,
		models.OperatingHours{ProviderID: id, Weekday: 0, IsClosed: true},
		models.OperatingHours{ProviderID: id, Weekday: 6, IsClosed: true},
	)

	for wd := 1; wd <= 5; wd++ {
		f.breakTimes = append(f.breakTimes, models.BreakTime{
			ProviderID: id,
			Weekday:    wd,
			Name:       "Lunch",
			StartTime:  "12:00",
			EndTime:    "13:00",
		})
	}

	f.services[10] = models.Service{ID: 10, ProviderID: id, Name: "Consultation", Price: 500, Active: true}
	f.services[11] = models.Service{ID: 11, ProviderID: id, Name: "Cleaning", Price: 1200, Active: true}

	return id
}

func fixedClock(t time.Time) func(string) time.Time {
	return func(string) time.Time { return t }
}
