package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAgedPayment(t *testing.T, f *fixture, orderID string, age time.Duration) *domain.Payment {
	t.Helper()
	payment := &domain.Payment{
		ID:            uuid.NewString(),
		OrderID:       orderID,
		UserID:        "user-1",
		Method:        domain.MethodVNPay,
		TransactionID: orderID,
		Amount:        370000,
		Status:        domain.PaymentStatusPending,
		CreatedAt:     time.Now().Add(-age),
	}
	_, err := f.payments.CreatePayment(payment)
	require.NoError(t, err)
	return payment
}

func TestCancelExpiredPaymentsFailsOldAndCancelsOrder(t *testing.T) {
	f := newFixture(vnpayOrder("o-old"), vnpayOrder("o-young"))
	old := seedAgedPayment(t, f, "o-old", 2*time.Hour)
	young := seedAgedPayment(t, f, "o-young", 5*time.Minute)

	stockBefore := f.products.stock("p-espresso")

	count, err := f.uc.CancelExpiredPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expired, err := f.payments.GetPaymentByID(old.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, expired.Status)
	require.NotNil(t, expired.FailedAt)

	cancelled, err := f.orders.GetOrderByID("o-old")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.OrderStatus)
	assert.Equal(t, domain.OrderPaymentFailed, cancelled.PaymentStatus)

	// Stock reserved by the expired order is back.
	assert.Equal(t, stockBefore+2, f.products.stock("p-espresso"))

	// The young payment and its order are untouched.
	alive, err := f.payments.GetPaymentByID(young.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, alive.Status)

	untouched, err := f.orders.GetOrderByID("o-young")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, untouched.OrderStatus)
}

func TestCancelExpiredPaymentsRepeatedSweepIsHarmless(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	seedAgedPayment(t, f, "o-1", 2*time.Hour)

	stockBefore := f.products.stock("p-espresso")

	count, err := f.uc.CancelExpiredPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Second sweep finds nothing claimable.
	count, err = f.uc.CancelExpiredPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Stock was restored exactly once.
	assert.Equal(t, stockBefore+2, f.products.stock("p-espresso"))
}

func TestCancelExpiredPaymentsNothingToDo(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	seedAgedPayment(t, f, "o-1", time.Minute)

	count, err := f.uc.CancelExpiredPayments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestGetPendingPaymentExpiresEagerly(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	payment := seedAgedPayment(t, f, "o-1", 2*time.Hour)

	_, err := f.uc.GetPendingPayment("o-1")
	assert.ErrorIs(t, err, domain.ErrPaymentExpired)

	stored, err := f.payments.GetPaymentByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, stored.Status)

	order, err := f.orders.GetOrderByID("o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.OrderStatus)
}

func TestGetPendingPaymentStillLive(t *testing.T) {
	f := newFixture(vnpayOrder("o-1"))
	payment := seedAgedPayment(t, f, "o-1", time.Minute)

	got, err := f.uc.GetPendingPayment("o-1")
	require.NoError(t, err)
	assert.Equal(t, payment.ID, got.ID)
}
