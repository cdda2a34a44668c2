package domain

import "time"

type PaymentMethod string

const (
	MethodCOD   PaymentMethod = "COD"
	MethodVNPay PaymentMethod = "VNPAY"
	MethodMomo  PaymentMethod = "MOMO"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentStatusTransitions is the allowed payment transition graph.
// PAID may only move further through the explicit refund flow.
var PaymentStatusTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:  {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:     {PaymentStatusRefunded},
	PaymentStatusFailed:   {},
	PaymentStatusRefunded: {},
}

// CODTransactionID marks a payment settled on delivery with no gateway.
const CODTransactionID = "COD"

type Payment struct {
	ID      string
	OrderID string
	UserID  string
	Method  PaymentMethod

	// TransactionID is the join key between our records and the provider:
	// populated at creation with the reference the provider echoes back,
	// later overwritten with the provider-reported transaction number.
	TransactionID string

	Amount              float64
	BankCode            string
	GatewayResponseCode string
	PayURL              string
	RawResponse         string

	Status     PaymentStatus
	PaidAt     *time.Time
	FailedAt   *time.Time
	RefundedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo reports whether the payment status may move to target.
func (p *Payment) CanTransitionTo(target PaymentStatus) bool {
	for _, allowed := range PaymentStatusTransitions[p.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted except
// the refund path from PAID.
func (p *Payment) IsTerminal() bool {
	return p.Status != PaymentStatusPending
}
