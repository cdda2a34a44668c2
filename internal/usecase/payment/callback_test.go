package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
	orderusecase "github.com/cherriedy/brewaco/internal/usecase/order"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPendingPayment(t *testing.T, f *fixture, orderID string) *domain.Payment {
	t.Helper()
	payment := &domain.Payment{
		ID:            uuid.NewString(),
		OrderID:       orderID,
		UserID:        "user-1",
		Method:        domain.MethodVNPay,
		TransactionID: orderID,
		Amount:        370000,
		Status:        domain.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}
	_, err := f.payments.CreatePayment(payment)
	require.NoError(t, err)
	return payment
}

func paidResult(orderID string) *domain.PaymentResult {
	return &domain.PaymentResult{
		Status:        domain.PaymentStatusPaid,
		Amount:        370000,
		TransactionID: "14422574",
		OrderRef:      orderID,
		ResponseCode:  "00",
		BankCode:      "NCB",
		RawResponse:   map[string]string{"vnp_ResponseCode": "00"},
	}
}

func TestHandleCallbackSuccessSettlesPaymentAndOrder(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	payment := seedPendingPayment(t, f, "o-1")
	f.registry.Register(domain.MethodVNPay, &fakeGateway{verifyResult: paidResult("o-1")})

	result, err := f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, result.Status)

	stored, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, stored.Status)
	// The provider transaction number replaces the creation-time reference.
	assert.Equal(t, "14422574", stored.TransactionID)
	assert.Equal(t, "00", stored.GatewayResponseCode)
	assert.Equal(t, "NCB", stored.BankCode)
	require.NotNil(t, stored.PaidAt)

	order, err := f.orders.GetOrderByID("o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaymentPaid, order.PaymentStatus)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "PAID", f.publisher.events[0].Status)
}

func TestHandleCallbackFailureOutcome(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	payment := seedPendingPayment(t, f, "o-1")
	f.registry.Register(domain.MethodVNPay, &fakeGateway{verifyResult: &domain.PaymentResult{
		Status:       domain.PaymentStatusFailed,
		OrderRef:     "o-1",
		ResponseCode: "24",
	}})

	_, err := f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	require.NoError(t, err)

	stored, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, stored.Status)
	require.NotNil(t, stored.FailedAt)

	order, err := f.orders.GetOrderByID("o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaymentFailed, order.PaymentStatus)
}

func TestHandleCallbackInvalidSignatureChangesNothing(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	payment := seedPendingPayment(t, f, "o-1")
	f.registry.Register(domain.MethodVNPay, &fakeGateway{verifyErr: domain.ErrInvalidSignature})

	_, err := f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	stored, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, stored.Status)

	order, err := f.orders.GetOrderByID("o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaymentPending, order.PaymentStatus)
	assert.Empty(t, f.publisher.events)
}

func TestHandleCallbackReplayIsIdempotent(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	payment := seedPendingPayment(t, f, "o-1")
	f.registry.Register(domain.MethodVNPay, &fakeGateway{verifyResult: paidResult("o-1")})

	_, err := f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	require.NoError(t, err)

	first, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)

	// Same notification delivered again.
	_, err = f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	require.NoError(t, err)

	second, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, f.publisher.events, 1)
}

// flakyOrderUsecase fails the first n order-mirror updates, standing in
// for a transient store failure between settling the payment row and
// updating the order.
type flakyOrderUsecase struct {
	orderusecase.OrderUsecase
	mirrorFailures int
}

func (f *flakyOrderUsecase) UpdateOrderPaymentStatus(orderID string, target domain.OrderPaymentStatus) (*domain.Order, error) {
	if f.mirrorFailures > 0 {
		f.mirrorFailures--
		return nil, errors.New("connection reset by peer")
	}
	return f.OrderUsecase.UpdateOrderPaymentStatus(orderID, target)
}

func TestHandleCallbackReplayRepairsOrderMirror(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	payment := seedPendingPayment(t, f, "o-1")
	f.registry.Register(domain.MethodVNPay, &fakeGateway{verifyResult: paidResult("o-1")})
	f.uc.Orders = &flakyOrderUsecase{OrderUsecase: f.uc.Orders, mirrorFailures: 1}

	// First delivery settles the payment but the order mirror fails.
	_, err := f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	require.NoError(t, err)

	stored, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, stored.Status)

	order, err := f.orders.GetOrderByID("o-1")
	require.NoError(t, err)
	require.Equal(t, domain.OrderPaymentPending, order.PaymentStatus)

	// The replayed notification repairs the mirror.
	_, err = f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	require.NoError(t, err)

	order, err = f.orders.GetOrderByID("o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaymentPaid, order.PaymentStatus)
}

func TestHandleCallbackUnknownReference(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	f.registry.Register(domain.MethodVNPay, &fakeGateway{verifyResult: paidResult("o-unknown")})

	_, err := f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestHandleCallbackLateSuccessAfterExpiry(t *testing.T) {
	order := vnpayOrder("o-1")
	order.OrderStatus = domain.OrderStatusCancelled
	order.PaymentStatus = domain.OrderPaymentFailed
	f := newFixture(order)

	payment := seedPendingPayment(t, f, "o-1")
	_, err := f.payments.MarkExpired(payment.ID, time.Now())
	require.NoError(t, err)

	f.registry.Register(domain.MethodVNPay, &fakeGateway{verifyResult: paidResult("o-1")})

	_, err = f.uc.HandleCallback(context.Background(), domain.MethodVNPay, map[string]string{})
	require.NoError(t, err)

	// The settlement is recorded for audit.
	stored, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, stored.Status)

	// The cancelled order is never revived.
	got, err := f.orders.GetOrderByID("o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, got.OrderStatus)
	assert.Equal(t, domain.OrderPaymentFailed, got.PaymentStatus)
}
