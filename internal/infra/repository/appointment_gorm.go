package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProviderByID(
	ctx context.Context,
	id uint,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.NotFoundError{Resource: "provider"}
		}
		return nil, err
	}
	return &provider, nil
}

func (r *AppointmentGormRepository) GetProviderBySlug(
	ctx context.Context,
	slug string,
) (*models.Provider, error) {

	var provider models.Provider
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&provider).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.NotFoundError{Resource: "provider"}
		}
		return nil, err
	}
	return &provider, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServicesByIDs(
	ctx context.Context,
	providerID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND active = true AND id IN ?", providerID, serviceIDs).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Schedule configuration
// --------------------------------------------------

func (r *AppointmentGormRepository) ListOperatingHours(
	ctx context.Context,
	providerID uint,
) ([]models.OperatingHours, error) {

	var hours []models.OperatingHours
	if err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *AppointmentGormRepository) ListBreakTimes(
	ctx context.Context,
	providerID uint,
	weekday int,
) ([]models.BreakTime, error) {

	var breaks []models.BreakTime
	if err := r.db.WithContext(ctx).
		Where("provider_id = ? AND weekday = ?", providerID, weekday).
		Order("start_time ASC").
		Find(&breaks).Error; err != nil {
		return nil, err
	}
	return breaks, nil
}

// --------------------------------------------------
// Appointments (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time", "status").
		Where(
			"provider_id = ? AND status IN ('pending', 'confirmed') AND start_time >= ? AND start_time < ?",
			providerID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where(
			"provider_id = ? AND start_time >= ? AND start_time < ?",
			providerID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) GetAppointmentForProvider(
	ctx context.Context,
	appointmentID uint,
	providerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, httperr.NotFoundError{Resource: "appointment"}
		}
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointments (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	services []models.AppointmentService,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Conflict re-check with the conflicting rows locked: holds them
		// until this transaction ends so a concurrent status flip cannot
		// un-block the window mid-insert. An empty result locks nothing,
		// so two racing inserts into a free window both pass this scan;
		// the appointments_no_overlap exclusion constraint settles that
		// race at commit. Postgres does not allow FOR UPDATE with
		// aggregates, hence the id scan instead of a count.
		var conflicting []uint
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"provider_id = ? AND status IN ('pending', 'confirmed') AND start_time < ? AND end_time > ?",
				ap.ProviderID, ap.EndTime, ap.StartTime,
			).
			Pluck("id", &conflicting).Error; err != nil {
			return err
		}

		if len(conflicting) > 0 {
			return httperr.SlotUnavailableError{Reason: schedule.ReasonBooked}
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		for i := range services {
			services[i].AppointmentID = ap.ID
		}
		if len(services) > 0 {
			if err := tx.Create(&services).Error; err != nil {
				return err
			}
		}

		return nil
	})

	// The exclusion constraint fires if two transactions raced past the
	// locked scan; report it the same way as a scanned conflict.
	if httperr.IsExclusionConflict(err) {
		return httperr.SlotUnavailableError{Reason: schedule.ReasonBooked}
	}
	return err
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// Compile-time check
var _ schedule.Repository = (*AppointmentGormRepository)(nil)
