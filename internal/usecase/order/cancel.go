package usecase

import (
	"fmt"
	"log/slog"

	"github.com/cherriedy/brewaco/internal/domain"
)

// CancelOrder cancels a buyer's own order and restores reserved stock.
func (uc *DefaultOrderUsecase) CancelOrder(userID, orderID string) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrPaymentUnauthorized
	}
	return uc.cancel(order, "user")
}

// SystemCancelOrder cancels on behalf of the system, typically because the
// payment window expired.
func (uc *DefaultOrderUsecase) SystemCancelOrder(orderID string) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}
	return uc.cancel(order, "expiry")
}

func (uc *DefaultOrderUsecase) cancel(order *domain.Order, trigger string) (*domain.Order, error) {
	if order.OrderStatus == domain.OrderStatusCancelled {
		return order, nil
	}
	if !order.CanCancel() {
		return nil, fmt.Errorf("order %s: status %s: %w",
			order.ID, order.OrderStatus, domain.ErrOrderCannotBeCancelled)
	}

	// Claim the transition first. Stock is restored only by the claim
	// winner, so concurrent cancellations cannot double-restore.
	claimed, err := uc.OrderRepo.UpdateOrderStatus(order.ID, order.OrderStatus, domain.OrderStatusCancelled, uc.now())
	if err != nil {
		return nil, err
	}
	if !claimed {
		fresh, err := uc.OrderRepo.GetOrderByID(order.ID)
		if err != nil {
			return nil, err
		}
		if fresh.OrderStatus == domain.OrderStatusCancelled {
			return fresh, nil
		}
		return nil, fmt.Errorf("order %s: status %s: %w",
			order.ID, fresh.OrderStatus, domain.ErrOrderCannotBeCancelled)
	}

	for _, item := range order.Items {
		if err := uc.ProductRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
			// The order is already cancelled; a failed restore is logged for
			// manual reconciliation instead of rolling the cancel back.
			slog.Error("failed to restore stock after cancellation",
				"order_id", order.ID,
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err)
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordOrderCancelled(trigger)
	}

	return uc.OrderRepo.GetOrderByID(order.ID)
}
