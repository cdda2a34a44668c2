package paymentdto

type CreatePaymentInput struct {
	OrderID string
	UserID  string

	// Request-scoped metadata forwarded to the gateway.
	ClientIP  string
	OrderInfo string
	BankCode  string
}
