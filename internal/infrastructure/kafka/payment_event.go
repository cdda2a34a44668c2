package kafka

// PaymentEvent is published on every payment state change: creation,
// settlement, failure, refund and expiry cancellation.
type PaymentEvent struct {
	PaymentID string  `json:"payment_id"`
	OrderID   string  `json:"order_id"`
	UserID    string  `json:"user_id"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Provider  string  `json:"provider,omitempty"`
}
