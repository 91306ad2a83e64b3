package schedule

import (
	"context"
	"time"

	"github.com/himsog/himsog-api/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	GetProviderBySlug(
		ctx context.Context,
		slug string,
	) (*models.Provider, error)

	// -------- Services --------
	ListServicesByIDs(
		ctx context.Context,
		providerID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Schedule configuration --------
	ListOperatingHours(
		ctx context.Context,
		providerID uint,
	) ([]models.OperatingHours, error)

	ListBreakTimes(
		ctx context.Context,
		providerID uint,
		weekday int,
	) ([]models.BreakTime, error)

	// -------- Appointments (read) --------
	ListAppointmentsForDay(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uint,
		providerID uint,
	) (*models.Appointment, error)

	// -------- Appointments (write) --------

	// CreateAppointment inserts the appointment and its service snapshots
	// in one transaction, re-checking for a conflicting pending/confirmed
	// appointment under a row lock inside the same transaction. Concurrent
	// bookings of the same window get exactly one success.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		services []models.AppointmentService,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
