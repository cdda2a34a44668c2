package domain

import "context"

// CreatePaymentMeta carries optional request-scoped data passed through to
// the provider. Missing fields are substituted with provider defaults.
type CreatePaymentMeta struct {
	ClientIP  string
	OrderInfo string
	ExtraData string
	BankCode  string
}

type CreatePaymentResult struct {
	// RedirectURL is where the buyer completes the payment.
	RedirectURL string
	// OrderRef is the reference the provider will echo back unchanged in
	// its callback. It is stored as the payment transaction id at creation.
	OrderRef string
}

// PaymentResult is the provider-neutral outcome of callback verification.
// Orchestrators consume only this shape and never branch on provider
// specific field names.
type PaymentResult struct {
	Status PaymentStatus
	// Amount in whole currency units (providers encoding subunits are
	// normalized by the adapter).
	Amount float64
	// TransactionID is the provider-side transaction number.
	TransactionID string
	// OrderRef is the echoed creation-time reference used to locate the
	// payment record.
	OrderRef string
	// ResponseCode is the provider result code as received.
	ResponseCode string
	BankCode     string
	RawResponse  map[string]string
}

// PaymentGateway translates between our payment model and one external
// provider's wire protocol.
type PaymentGateway interface {
	// CreatePayment builds a provider-specific signed request or redirect
	// URL for the given order and amount.
	CreatePayment(ctx context.Context, orderID string, amount float64, meta CreatePaymentMeta) (*CreatePaymentResult, error)

	// VerifyPayment recomputes the callback signature over params and
	// returns the verified outcome. A signature mismatch returns
	// ErrInvalidSignature and must cause no state change in the caller.
	VerifyPayment(params map[string]string) (*PaymentResult, error)
}

// Refunder is implemented by gateways that support refunds.
type Refunder interface {
	// RefundPayment re-signs a refund request for a settled transaction
	// and reports whether the provider accepted it.
	RefundPayment(ctx context.Context, transactionID string, amount float64) (bool, error)
}
