package services

import (
	"errors"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"gorm.io/gorm"
)

type SummaryService struct {
	db    *gorm.DB
	bills *BillingService
}

func NewSummaryService(db *gorm.DB) *SummaryService {
	return &SummaryService{db: db, bills: NewBillingService(db)}
}

type UserSummary struct {
	Month struct {
		Month          int `json:"month"`
		Year           int `json:"year"`
		ConfirmedHalf  int `json:"confirmed_half_meals"`
		ConfirmedFull  int `json:"confirmed_full_meals"`
		PendingEntries int `json:"pending_entries"`
	} `json:"month"`

	CurrentBill *BillView `json:"current_bill"`

	Lifetime struct {
		MonthsBilled int     `json:"months_billed"`
		TotalBilled  float64 `json:"total_billed"`
		TotalPaid    float64 `json:"total_paid"`
		TotalDue     float64 `json:"total_due"`
	} `json:"lifetime"`
}

// Summary builds the user dashboard: current-month meal counts, the
// month's bill if generated, and lifetime billed/paid/outstanding.
func (s *SummaryService) Summary(userID uint, now time.Time) (*UserSummary, error) {
	month, year := int(now.Month()), now.Year()
	start, end := MonthWindow(month, year)

	var rows []models.PollResponse
	if err := s.db.
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := &UserSummary{}
	out.Month.Month = month
	out.Month.Year = year
	for _, r := range rows {
		if !r.Present {
			continue
		}
		switch r.ConfirmationStatus {
		case models.ConfirmationConfirmed:
			if r.PortionSize == models.PortionHalf {
				out.Month.ConfirmedHalf++
			} else {
				out.Month.ConfirmedFull++
			}
		default:
			out.Month.PendingEntries++
		}
	}

	bill, err := s.bills.GetBill(userID, month, year)
	if err != nil && !errors.Is(err, ErrBillNotFound) {
		return nil, err
	}
	out.CurrentBill = bill // nil when the month has not been billed yet

	views, err := s.bills.GetUserBills(userID)
	if err != nil {
		return nil, err
	}
	out.Lifetime.MonthsBilled = len(views)
	for _, v := range views {
		out.Lifetime.TotalBilled += v.TotalAmount
		out.Lifetime.TotalPaid += v.PaidAmount
		out.Lifetime.TotalDue += v.DueAmount
	}
	return out, nil
}
