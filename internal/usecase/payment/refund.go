package usecase

import (
	"context"
	"fmt"

	"github.com/cherriedy/brewaco/internal/domain"
)

// RefundPayment sends a refund for a settled payment through its provider.
// Only payments of cancelled orders are refundable, and only for providers
// that expose a refund API.
func (uc *DefaultPaymentUsecase) RefundPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusPaid {
		return nil, fmt.Errorf("payment %s: status %s: %w",
			payment.ID, payment.Status, domain.ErrPaymentNotPaid)
	}

	order, err := uc.OrderRepo.GetOrderByID(payment.OrderID)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus != domain.OrderStatusCancelled {
		return nil, fmt.Errorf("order %s: status %s: %w",
			order.ID, order.OrderStatus, domain.ErrOrderNotCancelled)
	}

	refunder, err := uc.Registry.ResolveRefunder(payment.Method)
	if err != nil {
		return nil, err
	}

	accepted, err := refunder.RefundPayment(ctx, payment.TransactionID, payment.Amount)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.RecordGatewayError(string(payment.Method))
		}
		return nil, fmt.Errorf("refund payment %s: %w", payment.ID, err)
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordRefund(string(payment.Method), accepted)
	}
	if !accepted {
		return nil, fmt.Errorf("refund payment %s: provider rejected refund", payment.ID)
	}

	now := uc.now()
	payment.Status = domain.PaymentStatusRefunded
	payment.RefundedAt = &now
	if err := uc.PaymentRepo.UpdatePaymentResult(payment); err != nil {
		return nil, err
	}

	uc.publishEvent(payment)
	return payment, nil
}

// UpdateCODPayment applies a delivery-side outcome to a cash payment. It is
// rejected for gateway-backed methods, whose status only moves through
// verified callbacks.
func (uc *DefaultPaymentUsecase) UpdateCODPayment(paymentID string, target domain.PaymentStatus) (*domain.Payment, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Method != domain.MethodCOD {
		return nil, domain.ErrPaymentMethodNotAllowed
	}
	if payment.Status == target {
		return payment, nil
	}
	if !payment.CanTransitionTo(target) || target == domain.PaymentStatusRefunded {
		return nil, fmt.Errorf("payment %s: %s -> %s: %w",
			payment.ID, payment.Status, target, domain.ErrPaymentInvalidTransition)
	}

	now := uc.now()
	payment.Status = target
	switch target {
	case domain.PaymentStatusPaid:
		payment.PaidAt = &now
	case domain.PaymentStatusFailed:
		payment.FailedAt = &now
	}
	if err := uc.PaymentRepo.UpdatePaymentResult(payment); err != nil {
		return nil, err
	}

	orderTarget := domain.OrderPaymentFailed
	if target == domain.PaymentStatusPaid {
		orderTarget = domain.OrderPaymentPaid
	}
	if _, err := uc.Orders.UpdateOrderPaymentStatus(payment.OrderID, orderTarget); err != nil {
		return nil, err
	}

	uc.publishEvent(payment)
	return payment, nil
}
