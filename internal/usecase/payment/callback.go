package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cherriedy/brewaco/internal/domain"
)

// HandleCallback verifies a provider callback and applies the verified
// outcome to both the payment record and its order.
//
// Safety properties:
//   - a bad signature short-circuits before any read or write;
//   - replaying an already applied outcome changes nothing;
//   - a success arriving after the payment was expired is recorded on the
//     payment for audit, but the cancelled order is never revived.
func (uc *DefaultPaymentUsecase) HandleCallback(ctx context.Context, method domain.PaymentMethod, params map[string]string) (*domain.PaymentResult, error) {
	start := uc.now()
	provider := string(method)

	gw, err := uc.Registry.Resolve(method)
	if err != nil {
		return nil, err
	}

	result, err := gw.VerifyPayment(params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			if uc.Metrics != nil {
				uc.Metrics.RecordSignatureFailure(provider)
			}
			slog.Warn("rejected callback with invalid signature", "provider", provider)
		}
		return nil, err
	}

	payment, err := uc.locatePayment(result.OrderRef)
	if err != nil {
		return nil, err
	}

	if payment.Status == result.Status {
		// Duplicate delivery of the same outcome. The payment row needs no
		// change, but the order mirror is retried: the first delivery may
		// have settled the payment and then failed to mirror, and replayed
		// notifications are what repair that.
		uc.mirrorOrderPayment(payment.OrderID, payment.ID, result.Status)
		return result, nil
	}

	if payment.IsTerminal() {
		if payment.Status == domain.PaymentStatusFailed && result.Status == domain.PaymentStatusPaid {
			// Late success after the expiry sweep already failed the payment
			// and cancelled the order. Record the settlement for audit and
			// leave the order cancelled; money moved, so this needs a human.
			uc.applyResult(payment, result)
			if err := uc.PaymentRepo.UpdatePaymentResult(payment); err != nil {
				return nil, err
			}
			slog.Warn("payment settled after expiry, order stays cancelled",
				"payment_id", payment.ID,
				"order_id", payment.OrderID,
				"transaction_id", payment.TransactionID)
			uc.publishEvent(payment)
			return result, nil
		}
		slog.Warn("ignoring callback for terminal payment",
			"payment_id", payment.ID,
			"payment_status", payment.Status,
			"callback_status", result.Status)
		return result, nil
	}

	uc.applyResult(payment, result)
	if err := uc.PaymentRepo.UpdatePaymentResult(payment); err != nil {
		return nil, err
	}

	uc.mirrorOrderPayment(payment.OrderID, payment.ID, result.Status)

	if uc.Metrics != nil {
		uc.Metrics.RecordCallback(provider, string(result.Status), uc.now().Sub(start).Seconds())
	}
	uc.publishEvent(payment)

	return result, nil
}

// mirrorOrderPayment applies a settled payment outcome to the order row.
// The payment row is already settled by the time this runs, so a mirror
// failure is surfaced in the log instead of failing the provider
// acknowledgement; the next replayed notification retries it.
func (uc *DefaultPaymentUsecase) mirrorOrderPayment(orderID, paymentID string, status domain.PaymentStatus) {
	target := domain.OrderPaymentFailed
	if status == domain.PaymentStatusPaid {
		target = domain.OrderPaymentPaid
	}
	if _, err := uc.Orders.UpdateOrderPaymentStatus(orderID, target); err != nil {
		if errors.Is(err, domain.ErrPaymentInvalidTransition) {
			// The order side already holds a conflicting terminal value,
			// e.g. FAILED set by the expiry sweep before a late settlement.
			slog.Warn("order payment status conflicts with payment outcome",
				"payment_id", paymentID,
				"order_id", orderID,
				"target", target)
			return
		}
		slog.Error("failed to mirror payment outcome onto order",
			"payment_id", paymentID,
			"order_id", orderID,
			"target", target,
			"error", err)
	}
}

// locatePayment resolves the provider-echoed reference to our payment row.
// The reference is stored as the transaction id at creation; if a provider
// number already overwrote it, the order id lookup still matches.
func (uc *DefaultPaymentUsecase) locatePayment(orderRef string) (*domain.Payment, error) {
	if orderRef == "" {
		return nil, domain.ErrPaymentNotFound
	}
	payment, err := uc.PaymentRepo.GetPaymentByTransactionID(orderRef)
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}
	return uc.PaymentRepo.GetPaymentByOrderID(orderRef)
}

func (uc *DefaultPaymentUsecase) applyResult(payment *domain.Payment, result *domain.PaymentResult) {
	now := uc.now()
	payment.Status = result.Status
	payment.GatewayResponseCode = result.ResponseCode
	if result.TransactionID != "" {
		payment.TransactionID = result.TransactionID
	}
	if result.BankCode != "" {
		payment.BankCode = result.BankCode
	}
	if raw, err := json.Marshal(result.RawResponse); err == nil {
		payment.RawResponse = string(raw)
	}
	switch result.Status {
	case domain.PaymentStatusPaid:
		payment.PaidAt = &now
	case domain.PaymentStatusFailed:
		payment.FailedAt = &now
	}
}
