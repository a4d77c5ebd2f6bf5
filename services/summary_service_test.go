package services

import (
	"testing"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCountsAndLifetime(t *testing.T) {
	db := testDB(t)
	bills := NewBillingService(db)
	pay := NewPaymentService(db)
	sum := NewSummaryService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	seedBillableDays(t, db, u.ID, march, 2, models.PortionHalf)
	seedBillableDays(t, db, u.ID, march.AddDate(0, 0, 2), 3, models.PortionFull)
	seedResponse(t, db, u.ID, march.AddDate(0, 0, 6), true, models.PortionFull, models.ConfirmationPending)

	// a previous, fully paid month
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	seedBillableDays(t, db, u.ID, feb, 1, models.PortionFull)
	_, err := bills.GenerateBills(2, 2025)
	require.NoError(t, err)
	_, err = pay.RecordPayment(u.ID, 2, 2025, 60, "cash", "", u.ID)
	require.NoError(t, err)

	_, err = bills.GenerateBills(3, 2025)
	require.NoError(t, err)

	out, err := sum.Summary(u.ID, now)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Month.Month)
	assert.Equal(t, 2, out.Month.ConfirmedHalf)
	assert.Equal(t, 3, out.Month.ConfirmedFull)
	assert.Equal(t, 1, out.Month.PendingEntries)

	require.NotNil(t, out.CurrentBill)
	assert.Equal(t, 270.0, out.CurrentBill.TotalAmount) // 2*45 + 3*60

	assert.Equal(t, 2, out.Lifetime.MonthsBilled)
	assert.Equal(t, 330.0, out.Lifetime.TotalBilled)
	assert.Equal(t, 60.0, out.Lifetime.TotalPaid)
	assert.Equal(t, 270.0, out.Lifetime.TotalDue)
}

func TestSummaryBeforeBillGeneration(t *testing.T) {
	db := testDB(t)
	sum := NewSummaryService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)

	out, err := sum.Summary(u.ID, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, out.CurrentBill)
	assert.Zero(t, out.Lifetime.MonthsBilled)
}
