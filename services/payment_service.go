package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mayaaank/MyCanteen-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidAmount = errors.New("payment amount must be positive")

type PaymentService struct{ db *gorm.DB }

func NewPaymentService(db *gorm.DB) *PaymentService { return &PaymentService{db: db} }

// DeriveStatus recomputes paid/due/status from the full payment history.
// A cached running total is never trusted: summing the ledger on every
// read is what makes concurrent payment inserts safe.
func DeriveStatus(total float64, payments []models.PaymentRecord) (paid, due float64, status string) {
	for _, p := range payments {
		paid += p.Amount
	}
	due = total - paid
	if due < 0 {
		due = 0
	}
	switch {
	case paid >= total:
		status = models.BillStatusPaid
	case paid > 0:
		status = models.BillStatusPartial
	default:
		status = models.BillStatusPending
	}
	return paid, due, status
}

// RecordPayment appends one immutable payment against the (user, month,
// year) bill. No field on the bill row is updated; derived state comes
// from reads. Overpayment is recorded as-is and simply drives the due
// amount to zero.
func (s *PaymentService) RecordPayment(userID uint, month, year int, amount float64, method, notes string, recordedBy uint) (*models.PaymentRecord, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var bill models.MonthlyBill
	err := s.db.
		Where("user_id = ? AND month = ? AND year = ?", userID, month, year).
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch bill: %w", err)
	}

	rec := &models.PaymentRecord{
		BillID:        bill.ID,
		UserID:        userID,
		Reference:     uuid.NewString(),
		Amount:        amount,
		PaymentMethod: method,
		PaymentDate:   time.Now(),
		Notes:         notes,
		RecordedBy:    recordedBy,
	}
	if err := s.db.Create(rec).Error; err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	EmitBillingAlert(userID, models.AlertPaymentRecorded,
		fmt.Sprintf("Payment of %.2f recorded against your %s %d bill", amount, time.Month(month), year))
	return rec, nil
}

// PaymentsForBill lists the ledger for one bill, oldest first.
func (s *PaymentService) PaymentsForBill(billID uint) ([]models.PaymentRecord, error) {
	var rows []models.PaymentRecord
	err := s.db.Where("bill_id = ?", billID).Order("payment_date ASC, id ASC").Find(&rows).Error
	return rows, err
}
