package models

import "time"

const (
    AlertBillGenerated   = "bill.generated"
    AlertPaymentRecorded = "payment.recorded"
)

type Alert struct {
    ID        uint      `gorm:"primaryKey"`
    UserID    uint      `gorm:"index"`
    Kind      string    `gorm:"size:24"` // "bill.generated" | "payment.recorded"
    Message   string    `gorm:"type:text"`
    Read      bool      `gorm:"default:false"`
    CreatedAt time.Time
}
