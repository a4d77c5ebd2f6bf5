package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed process-wide meal rates.
const (
	HalfMealRate = 45.0
	FullMealRate = 60.0
)

var ErrBillNotFound = errors.New("bill not found")

type BillingService struct {
	db    *gorm.DB
	polls *PollService
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db, polls: NewPollService(db)}
}

// BillView is what leaves the service: the stored bill row with
// paid/due/status freshly derived from the payment ledger. The stored
// due_amount and status columns are never trusted on reads.
type BillView struct {
	ID            uint    `json:"id"`
	UserID        uint    `json:"user_id"`
	Month         int     `json:"month"`
	Year          int     `json:"year"`
	HalfMealCount int     `json:"half_meal_count"`
	FullMealCount int     `json:"full_meal_count"`
	HalfMealCost  float64 `json:"half_meal_cost"`
	FullMealCost  float64 `json:"full_meal_cost"`
	TotalAmount   float64 `json:"total_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	DueAmount     float64 `json:"due_amount"`
	Status        string  `json:"status"`
	FullName      string  `json:"full_name,omitempty"`
	Email         string  `json:"email,omitempty"`
}

// PriceBill turns aggregated counts into a priced bill line. Pure
// arithmetic, no error paths.
func PriceBill(c MealCounts) (halfCost, fullCost, total float64) {
	halfCost = float64(c.HalfMeals) * HalfMealRate
	fullCost = float64(c.FullMeals) * FullMealRate
	return halfCost, fullCost, halfCost + fullCost
}

func billView(b models.MonthlyBill) BillView {
	paid, due, status := DeriveStatus(b.TotalAmount, b.Payments)
	return BillView{
		ID:            b.ID,
		UserID:        b.UserID,
		Month:         b.Month,
		Year:          b.Year,
		HalfMealCount: b.HalfMealCount,
		FullMealCount: b.FullMealCount,
		HalfMealCost:  b.HalfMealCost,
		FullMealCost:  b.FullMealCost,
		TotalAmount:   b.TotalAmount,
		PaidAmount:    paid,
		DueAmount:     due,
		Status:        status,
		FullName:      b.User.FullName,
		Email:         b.User.Email,
	}
}

// GenerateBills aggregates the month's confirmed responses and upserts one
// bill per user on (user_id, month, year). Counts and amounts are
// overwritten on regeneration; due_amount and status are only seeded on
// first insert so payment history is never clobbered. Safe to run
// repeatedly for the same month.
func (s *BillingService) GenerateBills(month, year int) ([]BillView, error) {
	counts, err := s.polls.AggregateMonth(month, year)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(counts))
	for id := range counts {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	for _, userID := range userIDs {
		c := counts[userID]
		halfCost, fullCost, total := PriceBill(c)
		bill := models.MonthlyBill{
			UserID:        userID,
			Month:         month,
			Year:          year,
			HalfMealCount: c.HalfMeals,
			FullMealCount: c.FullMeals,
			HalfMealCost:  halfCost,
			FullMealCost:  fullCost,
			TotalAmount:   total,
			DueAmount:     total,
			Status:        models.BillStatusPending,
		}
		err := s.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"half_meal_count", "full_meal_count",
				"half_meal_cost", "full_meal_cost",
				"total_amount", "updated_at",
			}),
		}).Create(&bill).Error
		if err != nil {
			return nil, fmt.Errorf("upsert bill for user %d: %w", userID, err)
		}
	}

	views, err := s.GetAllBills(&month, &year)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		EmitBillingAlert(v.UserID, models.AlertBillGenerated,
			fmt.Sprintf("Your canteen bill for %s %d is ready: %.2f", time.Month(v.Month), v.Year, v.TotalAmount))
	}
	return views, nil
}

// GetUserBills returns every bill for one user, newest first, each with
// derived payment fields.
func (s *BillingService) GetUserBills(userID uint) ([]BillView, error) {
	var bills []models.MonthlyBill
	err := s.db.
		Preload("Payments").
		Where("user_id = ?", userID).
		Order("year DESC, month DESC").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("fetch bills: %w", err)
	}

	views := make([]BillView, 0, len(bills))
	for _, b := range bills {
		views = append(views, billView(b))
	}
	return views, nil
}

// GetAllBills returns all bills (optionally one month/year), largest
// total first, joined with user display fields.
func (s *BillingService) GetAllBills(month, year *int) ([]BillView, error) {
	q := s.db.Preload("Payments").Preload("User")
	if month != nil && year != nil {
		q = q.Where("month = ? AND year = ?", *month, *year)
	}

	var bills []models.MonthlyBill
	if err := q.Order("total_amount DESC").Find(&bills).Error; err != nil {
		return nil, fmt.Errorf("fetch bills: %w", err)
	}

	views := make([]BillView, 0, len(bills))
	for _, b := range bills {
		views = append(views, billView(b))
	}
	return views, nil
}

// GetBill returns one bill or ErrBillNotFound; any other failure is a
// store error, not a missing bill.
func (s *BillingService) GetBill(userID uint, month, year int) (*BillView, error) {
	var bill models.MonthlyBill
	err := s.db.
		Preload("Payments").
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch bill: %w", err)
	}
	v := billView(bill)
	return &v, nil
}
