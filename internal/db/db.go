package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/config"
	"github.com/himsog/himsog-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Service{},
		&models.OperatingHours{},
		&models.BreakTime{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := db.Exec(`
        UPDATE providers
        SET timezone = 'Asia/Manila'
        WHERE timezone IS NULL OR timezone = ''
    `).Error; err != nil {
		log.Fatalf("failed to backfill provider timezones: %v", err)
	}

	if err := ensureNoOverlapConstraint(db); err != nil {
		log.Fatalf("failed to install overlap constraint: %v", err)
	}

	return db
}

// ensureNoOverlapConstraint installs the database-level backstop for the
// no-double-booking invariant: two pending/confirmed appointments for one
// provider must never overlap. The locked conflict scan in the insert
// transaction cannot serialize two inserts into an empty window, so this
// constraint is what settles that race. Columns are timestamptz, so the
// range type must be tstzrange.
func ensureNoOverlapConstraint(db *gorm.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`,
		`ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            provider_id WITH =,
            tstzrange(start_time, end_time) WITH &&
        )
        WHERE (status IN ('pending', 'confirmed'))`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
