package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cherriedy/brewaco/internal/domain"
)

// CancelExpiredPayments is the hourly reconciliation sweep: every payment
// still PENDING past the retry period is failed and its order cancelled,
// which restores reserved stock.
//
// Each payment is claimed with a conditional update before anything else
// happens, so overlapping sweeps (or a sweep racing a live callback) cannot
// process the same payment twice. Per-item failures are logged and skipped;
// one bad row must not stall the whole sweep.
func (uc *DefaultPaymentUsecase) CancelExpiredPayments(ctx context.Context) (int, error) {
	cutoff := uc.now().Add(-uc.RetryPeriod)
	expired, err := uc.PaymentRepo.FindExpiredPending(cutoff)
	if err != nil {
		return 0, err
	}

	var count int
	for _, payment := range expired {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		claimed, err := uc.PaymentRepo.MarkExpired(payment.ID, uc.now())
		if err != nil {
			slog.Error("failed to expire payment",
				"payment_id", payment.ID, "order_id", payment.OrderID, "error", err)
			continue
		}
		if !claimed {
			// A callback settled it between the query and the claim.
			continue
		}

		if _, err := uc.Orders.SystemCancelOrder(payment.OrderID); err != nil {
			// The order may have moved past a cancellable status already;
			// the payment stays FAILED either way.
			if !errors.Is(err, domain.ErrOrderCannotBeCancelled) {
				slog.Error("failed to cancel order for expired payment",
					"payment_id", payment.ID, "order_id", payment.OrderID, "error", err)
			}
		}
		if _, err := uc.Orders.UpdateOrderPaymentStatus(payment.OrderID, domain.OrderPaymentFailed); err != nil {
			slog.Error("failed to mark order payment failed after expiry",
				"payment_id", payment.ID, "order_id", payment.OrderID, "error", err)
		}

		payment.Status = domain.PaymentStatusFailed
		if uc.Metrics != nil {
			uc.Metrics.RecordExpiredPayment()
		}
		uc.publishEvent(payment)
		count++

		slog.Info("expired pending payment",
			"payment_id", payment.ID, "order_id", payment.OrderID)
	}

	return count, nil
}
