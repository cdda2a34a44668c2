package usecase

import (
	"fmt"

	"github.com/cherriedy/brewaco/internal/domain"
)

// UpdateOrderStatus moves the fulfillment status one hop along the allowed
// transition graph. Cancellation goes through SystemCancelOrder so stock
// restoration is never skipped.
func (uc *DefaultOrderUsecase) UpdateOrderStatus(orderID string, target domain.OrderStatus) (*domain.Order, error) {
	if target == domain.OrderStatusCancelled {
		return uc.SystemCancelOrder(orderID)
	}

	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	// Self-transitions are absent from the table, so re-applying the
	// current status fails like any other invalid hop.
	if !order.CanTransitionTo(target) {
		return nil, fmt.Errorf("order %s: %s -> %s: %w",
			orderID, order.OrderStatus, target, domain.ErrOrderInvalidTransition)
	}

	ok, err := uc.OrderRepo.UpdateOrderStatus(orderID, order.OrderStatus, target, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race against a concurrent writer: re-read and judge the
		// fresh state.
		fresh, err := uc.OrderRepo.GetOrderByID(orderID)
		if err != nil {
			return nil, err
		}
		if fresh.OrderStatus == target {
			return fresh, nil
		}
		return nil, fmt.Errorf("order %s: %s -> %s: %w",
			orderID, fresh.OrderStatus, target, domain.ErrOrderInvalidTransition)
	}

	return uc.OrderRepo.GetOrderByID(orderID)
}

// UpdateOrderPaymentStatus mirrors a payment outcome onto the order row.
func (uc *DefaultOrderUsecase) UpdateOrderPaymentStatus(orderID string, target domain.OrderPaymentStatus) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == target {
		return order, nil
	}
	if !allowedOrderPaymentTransition(order.PaymentStatus, target) {
		return nil, fmt.Errorf("order %s: payment %s -> %s: %w",
			orderID, order.PaymentStatus, target, domain.ErrPaymentInvalidTransition)
	}

	ok, err := uc.OrderRepo.UpdateOrderPaymentStatus(orderID, order.PaymentStatus, target, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, err := uc.OrderRepo.GetOrderByID(orderID)
		if err != nil {
			return nil, err
		}
		if fresh.PaymentStatus == target {
			return fresh, nil
		}
		return nil, fmt.Errorf("order %s: payment %s -> %s: %w",
			orderID, fresh.PaymentStatus, target, domain.ErrPaymentInvalidTransition)
	}

	return uc.OrderRepo.GetOrderByID(orderID)
}

func allowedOrderPaymentTransition(from, to domain.OrderPaymentStatus) bool {
	for _, allowed := range domain.OrderPaymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
