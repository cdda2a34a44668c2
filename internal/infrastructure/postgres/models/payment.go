package models

import (
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
)

type PaymentModel struct {
	ID      string               `gorm:"primaryKey;type:uuid"`
	OrderID string               `gorm:"type:uuid;index;not null"`
	UserID  string               `gorm:"type:uuid;index:idx_payments_user_created"`
	Method  domain.PaymentMethod `gorm:"not null"`

	TransactionID       string `gorm:"index"`
	Amount              float64
	BankCode            string
	GatewayResponseCode string
	PayURL              string
	RawResponse         string `gorm:"type:text"`

	Status     domain.PaymentStatus `gorm:"index:idx_payments_status_created"`
	PaidAt     *time.Time
	FailedAt   *time.Time
	RefundedAt *time.Time

	CreatedAt time.Time `gorm:"index:idx_payments_user_created;index:idx_payments_status_created"`
	UpdatedAt time.Time
}
