package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/models"
)

func newMockRepo(t *testing.T) (*AppointmentGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewAppointmentGormRepository(gdb), mock
}

func TestGetProviderBySlug_Found(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "slug", "timezone", "slot_duration_min"}).
		AddRow(1, "Himsog Dental Clinic", "himsog-dental", "Asia/Manila", 30)

	mock.ExpectQuery(`SELECT \* FROM "providers" WHERE slug = \$1`).
		WillReturnRows(rows)

	provider, err := repo.GetProviderBySlug(context.Background(), "himsog-dental")
	require.NoError(t, err)

	assert.Equal(t, uint(1), provider.ID)
	assert.Equal(t, "Asia/Manila", provider.Timezone)
	assert.Equal(t, 30, provider.SlotDurationMin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProviderBySlug_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "providers" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetProviderBySlug(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, httperr.IsNotFound(err))
}

func TestListAppointmentsForDay_OnlyBlockingStatuses(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	rows := sqlmock.NewRows([]string{"start_time", "end_time", "status"}).
		AddRow(start.Add(9*time.Hour), start.Add(9*time.Hour+30*time.Minute), "pending").
		AddRow(start.Add(10*time.Hour), start.Add(10*time.Hour+30*time.Minute), "confirmed")

	mock.ExpectQuery(`SELECT "start_time","end_time","status" FROM "appointments" WHERE provider_id = \$1 AND status IN \('pending', 'confirmed'\)`).
		WillReturnRows(rows)

	aps, err := repo.ListAppointmentsForDay(context.Background(), 1, start, end)
	require.NoError(t, err)
	require.Len(t, aps, 2)

	assert.Equal(t, "pending", aps[0].Status)
	assert.True(t, aps[0].StartTime.Before(aps[1].StartTime))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointment_ConflictDetectedUnderLock(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "appointments" WHERE provider_id = \$1 AND status IN \('pending', 'confirmed'\) AND start_time < \$2 AND end_time > \$3 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectRollback()

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	ap := &models.Appointment{
		Reference:   "11111111-2222-3333-4444-555555555555",
		ProviderID:  1,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      "pending",
		PatientName: "Maria Santos",
	}
	err := repo.CreateAppointment(context.Background(), ap, nil)
	require.Error(t, err)

	se, ok := httperr.AsSlotUnavailable(err)
	require.True(t, ok)
	assert.Equal(t, "Already booked", se.Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointment_FreeWindowInserts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	// locked scan finds nothing; no aggregate, Postgres accepts FOR UPDATE
	mock.ExpectQuery(`SELECT "id" FROM "appointments" WHERE provider_id = \$1 AND status IN \('pending', 'confirmed'\) AND start_time < \$2 AND end_time > \$3 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	start := time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC)

	ap := &models.Appointment{
		Reference:   "11111111-2222-3333-4444-555555555555",
		ProviderID:  1,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      "pending",
		PatientName: "Maria Santos",
	}
	err := repo.CreateAppointment(context.Background(), ap, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(1), ap.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOperatingHours(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "provider_id", "weekday", "start_time", "end_time", "is_closed"}).
		AddRow(1, 1, 1, "09:00", "17:00", false).
		AddRow(2, 1, 2, "09:00", "17:00", false)

	mock.ExpectQuery(`SELECT \* FROM "operating_hours" WHERE provider_id = \$1 ORDER BY weekday ASC`).
		WillReturnRows(rows)

	hours, err := repo.ListOperatingHours(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, 1, hours[0].Weekday)
	assert.Equal(t, "09:00", hours[0].StartTime)
}
