package services

import (
	"testing"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PollResponse{},
		&models.MonthlyBill{},
		&models.PaymentRecord{},
		&models.Alert{},
		&models.UserDevice{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, name, role string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "x", FullName: name, Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedResponse(t *testing.T, db *gorm.DB, userID uint, date time.Time, present bool, portion, status string) {
	t.Helper()
	r := models.PollResponse{
		UserID:             userID,
		Date:               DayUTC(date),
		Present:            present,
		PortionSize:        portion,
		ConfirmationStatus: status,
	}
	require.NoError(t, db.Create(&r).Error)
}

// seedBillableDays inserts n confirmed+present responses starting at a date.
func seedBillableDays(t *testing.T, db *gorm.DB, userID uint, start time.Time, n int, portion string) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedResponse(t, db, userID, start.AddDate(0, 0, i), true, portion, models.ConfirmationConfirmed)
	}
}
