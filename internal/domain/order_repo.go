package domain

import "time"

type OrderRepository interface {
	CreateOrder(order *Order) (string, error)
	GetOrderByID(orderID string) (*Order, error)
	GetOrdersByUserID(userID string, page, limit int64) ([]*Order, int64, error)

	// UpdateOrderStatus conditionally moves orderStatus from to newStatus,
	// stamping stampAt into the matching per-transition timestamp column.
	// It reports whether the row was actually transitioned: false means
	// another writer got there first and the caller must re-read.
	UpdateOrderStatus(orderID string, from, to OrderStatus, stampAt time.Time) (bool, error)

	// UpdateOrderPaymentStatus is the payment-side counterpart of
	// UpdateOrderStatus with the same conditional-update contract.
	UpdateOrderPaymentStatus(orderID string, from, to OrderPaymentStatus, stampAt time.Time) (bool, error)
}

type ProductRepository interface {
	GetProductsByIDs(productIDs []string) ([]*Product, error)

	// AdjustStock atomically adds delta to the product stock counter.
	// A negative delta is rejected when it would drive stock below zero.
	AdjustStock(productID string, delta int) error
}
