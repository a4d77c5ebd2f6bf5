package models

import (
    "time"

    "gorm.io/gorm"
)

const (
    PortionHalf = "half"
    PortionFull = "full"

    ConfirmationPending   = "pending"
    ConfirmationConfirmed = "confirmed"
)

// One poll answer per user per day. Editing a confirmed response puts it
// back into "pending" until an admin confirms again.
type PollResponse struct {
    gorm.Model
    UserID             uint      `gorm:"not null;uniqueIndex:idx_poll_user_date"`
    Date               time.Time `gorm:"not null;uniqueIndex:idx_poll_user_date"` // midnight UTC, day granularity
    Present            bool
    PortionSize        string `gorm:"size:8;default:'full'"`
    ConfirmationStatus string `gorm:"size:12;default:'pending';index"`

    User User `gorm:"foreignKey:UserID"`
}

// Billable responses are the only input to bill generation.
func (p *PollResponse) Billable() bool {
    return p.Present && p.ConfirmationStatus == ConfirmationConfirmed
}
