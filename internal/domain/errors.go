package domain

import "errors"

var (
	ErrOrderNotFound   = errors.New("PAYMENT_ORDER_NOT_FOUND")
	ErrPaymentNotFound = errors.New("PAYMENT_NOT_FOUND")
	ErrProductNotFound = errors.New("ORDER_PRODUCT_NOT_FOUND")

	ErrPaymentUnauthorized = errors.New("PAYMENT_UNAUTHORIZED")

	ErrInvalidOrderStatus        = errors.New("PAYMENT_INVALID_ORDER_STATUS")
	ErrOrderInvalidTransition    = errors.New("ORDER_INVALID_STATUS_TRANSITION")
	ErrPaymentInvalidTransition  = errors.New("PAYMENT_INVALID_STATUS_TRANSITION")
	ErrOrderCannotBeCancelled    = errors.New("ORDER_CANNOT_BE_CANCELLED")
	ErrPaymentMethodNotAllowed   = errors.New("PAYMENT_METHOD_NOT_ALLOWED")
	ErrPaymentNotPaid            = errors.New("PAYMENT_NOT_PAID")
	ErrOrderNotCancelled         = errors.New("ORDER_NOT_CANCELLED")
	ErrGatewayNotSupported       = errors.New("PAYMENT_GATEWAY_NOT_SUPPORTED")
	ErrRefundNotSupported        = errors.New("PAYMENT_REFUND_NOT_SUPPORTED")
	ErrInsufficientStock         = errors.New("ORDER_INSUFFICIENT_STOCK")
	ErrDuplicatePendingPayment   = errors.New("PAYMENT_DUPLICATE_PENDING")
	ErrPaymentExpired            = errors.New("PAYMENT_EXPIRED")

	// ErrInvalidSignature is a security-relevant integrity violation: the
	// callback signature did not match. It carries no detail about which
	// part of the signature failed.
	ErrInvalidSignature = errors.New("PAYMENT_INVALID_SIGNATURE")

	// ErrMissingConfig is returned at adapter construction time when a
	// required secret or URL is absent.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrGatewayUnavailable wraps transient provider HTTP failures; the
	// caller may retry create-payment, which reuses the pending payment.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
