package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/cherriedy/brewaco/internal/domain"
	paymentdto "github.com/cherriedy/brewaco/internal/usecase/dto/payment"
	"github.com/google/uuid"
)

// CreatePayment initiates (or resumes) payment for a pending order.
//
// The operation is idempotent with respect to retries: while an order has a
// live pending payment, repeated calls reuse that payment and only re-derive
// the provider redirect URL. At most one PENDING payment per order can exist,
// enforced by the store.
func (uc *DefaultPaymentUsecase) CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.CreatePaymentOutput, error) {
	order, err := uc.OrderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != input.UserID {
		return nil, domain.ErrPaymentUnauthorized
	}
	if order.OrderStatus != domain.OrderStatusPending || order.PaymentStatus != domain.OrderPaymentPending {
		return nil, fmt.Errorf("order %s: status %s/%s: %w",
			order.ID, order.OrderStatus, order.PaymentStatus, domain.ErrInvalidOrderStatus)
	}

	if order.PaymentMethod == domain.MethodCOD {
		return uc.createCODPayment(order)
	}
	return uc.createGatewayPayment(ctx, order, input)
}

// createCODPayment settles immediately: cash on delivery involves no
// provider, so the payment is recorded PAID and the order marked paid in the
// same request.
func (uc *DefaultPaymentUsecase) createCODPayment(order *domain.Order) (*paymentdto.CreatePaymentOutput, error) {
	existing, err := uc.PaymentRepo.GetPaymentByOrderID(order.ID)
	if err != nil && !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}
	if existing != nil {
		return &paymentdto.CreatePaymentOutput{Payment: existing, IsRetry: true}, nil
	}

	now := uc.now()
	payment := &domain.Payment{
		ID:            uuid.NewString(),
		OrderID:       order.ID,
		UserID:        order.UserID,
		Method:        domain.MethodCOD,
		TransactionID: domain.CODTransactionID,
		Amount:        order.TotalAmount,
		Status:        domain.PaymentStatusPaid,
		PaidAt:        &now,
	}
	if _, err := uc.PaymentRepo.CreatePayment(payment); err != nil {
		return nil, err
	}

	if _, err := uc.Orders.UpdateOrderPaymentStatus(order.ID, domain.OrderPaymentPaid); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordPaymentCreated(string(domain.MethodCOD))
	}
	uc.publishEvent(payment)

	return &paymentdto.CreatePaymentOutput{Payment: payment}, nil
}

func (uc *DefaultPaymentUsecase) createGatewayPayment(ctx context.Context, order *domain.Order, input *paymentdto.CreatePaymentInput) (*paymentdto.CreatePaymentOutput, error) {
	gw, err := uc.Registry.Resolve(order.PaymentMethod)
	if err != nil {
		return nil, err
	}

	payment, err := uc.PaymentRepo.GetPendingPaymentByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	isRetry := payment != nil

	if payment == nil {
		payment = &domain.Payment{
			ID:      uuid.NewString(),
			OrderID: order.ID,
			UserID:  order.UserID,
			Method:  order.PaymentMethod,
			// The order id is what the provider echoes back in its
			// callback, so it doubles as the transaction id until the
			// provider-side number arrives.
			TransactionID: order.ID,
			Amount:        order.TotalAmount,
			Status:        domain.PaymentStatusPending,
		}
		if _, err := uc.PaymentRepo.CreatePayment(payment); err != nil {
			if !errors.Is(err, domain.ErrDuplicatePendingPayment) {
				return nil, err
			}
			// A concurrent request created the pending payment first.
			payment, err = uc.PaymentRepo.GetPendingPaymentByOrderID(order.ID)
			if err != nil {
				return nil, err
			}
			if payment == nil {
				return nil, domain.ErrPaymentNotFound
			}
			isRetry = true
		}
	}

	res, err := gw.CreatePayment(ctx, order.ID, order.TotalAmount, domain.CreatePaymentMeta{
		ClientIP:  input.ClientIP,
		OrderInfo: input.OrderInfo,
		BankCode:  input.BankCode,
	})
	if err != nil {
		// The pending payment row survives, so the buyer can retry.
		if uc.Metrics != nil {
			uc.Metrics.RecordGatewayError(string(order.PaymentMethod))
		}
		return nil, fmt.Errorf("create payment for order %s: %w", order.ID, err)
	}

	if err := uc.PaymentRepo.SavePayURL(payment.ID, res.RedirectURL); err != nil {
		return nil, err
	}
	payment.PayURL = res.RedirectURL

	if uc.Metrics != nil {
		if isRetry {
			uc.Metrics.RecordPaymentRetry(string(order.PaymentMethod))
		} else {
			uc.Metrics.RecordPaymentCreated(string(order.PaymentMethod))
		}
	}
	if !isRetry {
		uc.publishEvent(payment)
	}

	return &paymentdto.CreatePaymentOutput{
		Payment:    payment,
		PaymentURL: res.RedirectURL,
		IsRetry:    isRetry,
	}, nil
}
