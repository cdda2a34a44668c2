package usecase

import (
	"github.com/cherriedy/brewaco/internal/domain"
)

func (uc *DefaultPaymentUsecase) GetPaymentByID(userID, paymentID string) (*domain.Payment, error) {
	payment, err := uc.PaymentRepo.GetPaymentByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domain.ErrPaymentUnauthorized
	}
	return payment, nil
}

func (uc *DefaultPaymentUsecase) GetPaymentByOrderID(userID, orderID string) (*domain.Payment, error) {
	payment, err := uc.PaymentRepo.GetPaymentByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domain.ErrPaymentUnauthorized
	}
	return payment, nil
}

// GetPendingPayment returns the live pending payment of an order, expiring
// it eagerly when the retry window already elapsed so the buyer gets a
// definitive answer instead of a dead redirect URL.
func (uc *DefaultPaymentUsecase) GetPendingPayment(orderID string) (*domain.Payment, error) {
	payment, err := uc.PaymentRepo.GetPendingPaymentByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrPaymentNotFound
	}

	if uc.now().Sub(payment.CreatedAt) > uc.RetryPeriod {
		claimed, err := uc.PaymentRepo.MarkExpired(payment.ID, uc.now())
		if err != nil {
			return nil, err
		}
		if claimed {
			if _, err := uc.Orders.SystemCancelOrder(payment.OrderID); err != nil {
				return nil, err
			}
			if _, err := uc.Orders.UpdateOrderPaymentStatus(payment.OrderID, domain.OrderPaymentFailed); err != nil {
				return nil, err
			}
		}
		return nil, domain.ErrPaymentExpired
	}

	return payment, nil
}

func (uc *DefaultPaymentUsecase) GetPaymentsByUserID(userID string, page, limit int64) ([]*domain.Payment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.PaymentRepo.GetPaymentsByUserID(userID, page, limit)
}
