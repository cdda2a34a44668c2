package paymentdto

import "github.com/cherriedy/brewaco/internal/domain"

type CreatePaymentOutput struct {
	Payment *domain.Payment
	// PaymentURL is set for online methods only; COD settles immediately.
	PaymentURL string
	// IsRetry reports that an existing pending payment was reused.
	IsRetry bool
}
