package domain

import "time"

type PaymentRepository interface {
	// CreatePayment persists a new payment. The store enforces at most one
	// PENDING payment per order; a violation returns
	// ErrDuplicatePendingPayment.
	CreatePayment(payment *Payment) (string, error)

	GetPaymentByID(paymentID string) (*Payment, error)
	GetPaymentByOrderID(orderID string) (*Payment, error)
	GetPendingPaymentByOrderID(orderID string) (*Payment, error)
	GetPaymentByTransactionID(transactionID string) (*Payment, error)
	GetPaymentsByUserID(userID string, page, limit int64) ([]*Payment, int64, error)

	// FindExpiredPending returns PENDING payments created before cutoff.
	FindExpiredPending(cutoff time.Time) ([]*Payment, error)

	// MarkExpired claims a pending payment for the expiry sweep by moving
	// it PENDING -> FAILED in a single conditional update. It reports
	// whether this caller won the claim.
	MarkExpired(paymentID string, stampAt time.Time) (bool, error)

	// UpdatePaymentResult applies a verified gateway outcome: status,
	// timestamp, provider transaction number, response code and the raw
	// provider payload.
	UpdatePaymentResult(payment *Payment) error

	SavePayURL(paymentID, payURL string) error
}
