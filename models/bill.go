package models

import (
    "time"

    "gorm.io/gorm"
)

const (
    BillStatusPending = "pending"
    BillStatusPartial = "partial"
    BillStatusPaid    = "paid"
)

// MonthlyBill is unique on (user_id, month, year). Regenerating a month
// overwrites the counts and amounts but never touches payment records.
// DueAmount and Status are seeded at generation time and treated as a
// cache; every read path recomputes them from the payment ledger.
type MonthlyBill struct {
    gorm.Model
    UserID        uint `gorm:"not null;uniqueIndex:idx_bill_user_month_year"`
    Month         int  `gorm:"not null;uniqueIndex:idx_bill_user_month_year"`
    Year          int  `gorm:"not null;uniqueIndex:idx_bill_user_month_year"`
    HalfMealCount int
    FullMealCount int
    HalfMealCost  float64
    FullMealCost  float64
    TotalAmount   float64
    DueAmount     float64
    Status        string `gorm:"size:10;default:'pending'"`

    User     User            `gorm:"foreignKey:UserID"`
    Payments []PaymentRecord `gorm:"foreignKey:BillID"`
}

// PaymentRecord is append-only: created by an admin action, never updated
// or deleted afterwards.
type PaymentRecord struct {
    ID            uint      `gorm:"primaryKey" json:"id"`
    BillID        uint      `gorm:"not null;index" json:"bill_id"`
    UserID        uint      `gorm:"index" json:"user_id"`
    Reference     string    `gorm:"size:36;uniqueIndex" json:"reference"`
    Amount        float64   `gorm:"not null" json:"amount"`
    PaymentMethod string    `gorm:"size:20" json:"payment_method"`
    PaymentDate   time.Time `gorm:"index" json:"payment_date"`
    Notes         string    `gorm:"type:text" json:"notes"`
    RecordedBy    uint      `json:"recorded_by"`
    CreatedAt     time.Time `json:"created_at"`
}
