package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipping  OrderStatus = "SHIPPING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type OrderPaymentStatus string

const (
	OrderPaymentPending OrderPaymentStatus = "PENDING"
	OrderPaymentPaid    OrderPaymentStatus = "PAID"
	OrderPaymentFailed  OrderPaymentStatus = "FAILED"
)

// OrderStatusTransitions is the allowed fulfillment transition graph.
// DELIVERED and CANCELLED are terminal.
var OrderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipping, OrderStatusCancelled},
	OrderStatusShipping:  {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// OrderPaymentTransitions is the allowed payment-status transition graph
// on the order side. PAID and FAILED are terminal.
var OrderPaymentTransitions = map[OrderPaymentStatus][]OrderPaymentStatus{
	OrderPaymentPending: {OrderPaymentPaid, OrderPaymentFailed},
	OrderPaymentPaid:    {},
	OrderPaymentFailed:  {},
}

// CancellableStatuses are the fulfillment statuses an order may still be
// cancelled from. Once shipping started cancellation is no longer allowed.
var CancellableStatuses = []OrderStatus{OrderStatusPending, OrderStatusConfirmed}

type OrderItem struct {
	ProductID string
	Name      string
	Price     float64
	ImageURL  string
	Quantity  int
}

type ShippingAddress struct {
	Street        string
	City          string
	State         string
	Zip           string
	Country       string
	Phone         string
	RecipientName string
}

type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	TotalAmount     float64
	PaymentMethod   PaymentMethod
	ShippingAddress ShippingAddress
	PromotionCode   string
	DiscountAmount  float64
	Note            string

	OrderStatus   OrderStatus
	PaymentStatus OrderPaymentStatus

	ConfirmedAt *time.Time
	ShippingAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	PaidAt      *time.Time
	FailedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo reports whether the fulfillment status may move to target.
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range OrderStatusTransitions[o.OrderStatus] {
		if allowed == target {
			return true
		}
	}
	return false
}

// CanCancel reports whether the order is still in a cancellable status.
func (o *Order) CanCancel() bool {
	for _, s := range CancellableStatuses {
		if o.OrderStatus == s {
			return true
		}
	}
	return false
}
