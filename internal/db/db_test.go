package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestEnsureNoOverlapConstraint(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// timestamptz columns require tstzrange; tsrange would fail to resolve
	mock.ExpectExec(`ADD CONSTRAINT appointments_no_overlap[\s\S]*tstzrange\(start_time, end_time\) WITH &&[\s\S]*WHERE \(status IN \('pending', 'confirmed'\)\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, ensureNoOverlapConstraint(gdb))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureNoOverlapConstraint_PropagatesDDLErrors(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ADD CONSTRAINT appointments_no_overlap`).
		WillReturnError(errors.New(`type "tsrange" does not match column type`))

	err := ensureNoOverlapConstraint(gdb)
	require.Error(t, err)
}
