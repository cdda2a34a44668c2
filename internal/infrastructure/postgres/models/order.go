package models

import (
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
)

type OrderModel struct {
	ID            string                    `gorm:"primaryKey;type:uuid"`
	UserID        string                    `gorm:"type:uuid;index:idx_orders_user_created"`
	TotalAmount   float64                   `gorm:"not null"`
	PaymentMethod domain.PaymentMethod      `gorm:"not null"`
	OrderStatus   domain.OrderStatus        `gorm:"index:idx_orders_status_created"`
	PaymentStatus domain.OrderPaymentStatus `gorm:"index"`

	PromotionCode  string
	DiscountAmount float64
	Note           string

	Street        string
	City          string
	State         string
	Zip           string
	Country       string
	Phone         string
	RecipientName string

	ConfirmedAt *time.Time
	ShippingAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	PaidAt      *time.Time
	FailedAt    *time.Time

	Items []OrderItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"index:idx_orders_user_created;index:idx_orders_status_created"`
	UpdatedAt time.Time
}

// OrderItemModel is an immutable snapshot of the product at purchase
// time: catalog price changes never affect existing orders.
type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   string `gorm:"type:uuid;index;not null"`
	ProductID string `gorm:"type:uuid;not null"`
	Name      string `gorm:"not null"`
	Price     float64
	ImageURL  string
	Quantity  int `gorm:"not null"`
}
