package services

import (
	"testing"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceBill(t *testing.T) {
	half, full, total := PriceBill(MealCounts{HalfMeals: 4, FullMeals: 6})
	assert.Equal(t, 180.0, half)
	assert.Equal(t, 360.0, full)
	assert.Equal(t, 540.0, total)

	half, full, total = PriceBill(MealCounts{})
	assert.Zero(t, half)
	assert.Zero(t, full)
	assert.Zero(t, total)
}

func TestGenerateBillsOneBillPerUser(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)
	u1 := seedUser(t, db, "a@x.com", "A", models.RoleUser)
	u2 := seedUser(t, db, "b@x.com", "B", models.RoleUser)
	march := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	// u1: 10 confirmed+present rows, 4 half + 6 full
	seedBillableDays(t, db, u1.ID, march, 4, models.PortionHalf)
	seedBillableDays(t, db, u1.ID, march.AddDate(0, 0, 4), 6, models.PortionFull)
	// u2: 2 full
	seedBillableDays(t, db, u2.ID, march, 2, models.PortionFull)

	bills, err := svc.GenerateBills(3, 2025)
	require.NoError(t, err)
	require.Len(t, bills, 2)

	// sorted by total_amount descending, user fields joined
	assert.Equal(t, u1.ID, bills[0].UserID)
	assert.Equal(t, 4, bills[0].HalfMealCount)
	assert.Equal(t, 6, bills[0].FullMealCount)
	assert.Equal(t, 180.0, bills[0].HalfMealCost)
	assert.Equal(t, 360.0, bills[0].FullMealCost)
	assert.Equal(t, 540.0, bills[0].TotalAmount)
	assert.Equal(t, 540.0, bills[0].DueAmount)
	assert.Equal(t, models.BillStatusPending, bills[0].Status)
	assert.Equal(t, "A", bills[0].FullName)

	assert.Equal(t, u2.ID, bills[1].UserID)
	assert.Equal(t, 120.0, bills[1].TotalAmount)
}

func TestGenerateBillsSkipsUsersWithoutBillableRows(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)
	march := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	seedResponse(t, db, u.ID, march, true, models.PortionFull, models.ConfirmationPending)

	bills, err := svc.GenerateBills(3, 2025)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestGenerateBillsIdempotent(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)
	march := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	seedBillableDays(t, db, u.ID, march, 4, models.PortionHalf)
	seedBillableDays(t, db, u.ID, march.AddDate(0, 0, 4), 6, models.PortionFull)

	first, err := svc.GenerateBills(3, 2025)
	require.NoError(t, err)
	second, err := svc.GenerateBills(3, 2025)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0].HalfMealCount, second[0].HalfMealCount)
	assert.Equal(t, first[0].FullMealCount, second[0].FullMealCount)
	assert.Equal(t, first[0].TotalAmount, second[0].TotalAmount)
	assert.Equal(t, first[0].ID, second[0].ID, "regeneration must update the same row")

	var count int64
	db.Model(&models.MonthlyBill{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRegenerationKeepsPaymentsVisible(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)
	pay := NewPaymentService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)
	march := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	seedBillableDays(t, db, u.ID, march, 9, models.PortionFull) // 540

	_, err := svc.GenerateBills(3, 2025)
	require.NoError(t, err)
	_, err = pay.RecordPayment(u.ID, 3, 2025, 200, "cash", "", u.ID)
	require.NoError(t, err)

	// regenerate the same month; derived reads must still see the payment
	_, err = svc.GenerateBills(3, 2025)
	require.NoError(t, err)

	bill, err := svc.GetBill(u.ID, 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, 200.0, bill.PaidAmount)
	assert.Equal(t, 340.0, bill.DueAmount)
	assert.Equal(t, models.BillStatusPartial, bill.Status)
}

func TestGenerateBillsPicksUpNewResponses(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)
	march := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	seedBillableDays(t, db, u.ID, march, 2, models.PortionFull)

	bills, err := svc.GenerateBills(3, 2025)
	require.NoError(t, err)
	assert.Equal(t, 120.0, bills[0].TotalAmount)

	seedBillableDays(t, db, u.ID, march.AddDate(0, 0, 2), 1, models.PortionHalf)
	bills, err = svc.GenerateBills(3, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, bills[0].HalfMealCount+bills[0].FullMealCount)
	assert.Equal(t, 165.0, bills[0].TotalAmount)
}

func TestGetUserBillsNewestFirst(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)

	for _, my := range []struct{ m, y int }{{11, 2024}, {1, 2025}, {12, 2024}} {
		start, _ := MonthWindow(my.m, my.y)
		seedBillableDays(t, db, u.ID, start, 1, models.PortionFull)
		_, err := svc.GenerateBills(my.m, my.y)
		require.NoError(t, err)
	}

	bills, err := svc.GetUserBills(u.ID)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, [3]int{2025, 2024, 2024}, [3]int{bills[0].Year, bills[1].Year, bills[2].Year})
	assert.Equal(t, [3]int{1, 12, 11}, [3]int{bills[0].Month, bills[1].Month, bills[2].Month})
}

func TestGetAllBillsMonthFilter(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)
	u := seedUser(t, db, "a@x.com", "A", models.RoleUser)

	for _, m := range []int{3, 4} {
		start, _ := MonthWindow(m, 2025)
		seedBillableDays(t, db, u.ID, start, 1, models.PortionFull)
		_, err := svc.GenerateBills(m, 2025)
		require.NoError(t, err)
	}

	all, err := svc.GetAllBills(nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	m, y := 3, 2025
	filtered, err := svc.GetAllBills(&m, &y)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 3, filtered[0].Month)
}

func TestGetBillNotFound(t *testing.T) {
	db := testDB(t)
	svc := NewBillingService(db)

	_, err := svc.GetBill(42, 3, 2025)
	assert.ErrorIs(t, err, ErrBillNotFound)
}
