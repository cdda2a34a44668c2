package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/gateway"
	"github.com/cherriedy/brewaco/internal/infrastructure/kafka"
	"github.com/cherriedy/brewaco/internal/infrastructure/metrics"
	paymentdto "github.com/cherriedy/brewaco/internal/usecase/dto/payment"
	orderusecase "github.com/cherriedy/brewaco/internal/usecase/order"
)

// EventPublisher pushes payment lifecycle events to the message broker.
type EventPublisher interface {
	PublishPaymentEvent(topic string, event kafka.PaymentEvent) error
}

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.CreatePaymentOutput, error)

	// HandleCallback verifies a provider callback and applies the outcome
	// to the payment and its order. Verification failure causes no state
	// change. Replays of an already applied outcome are no-ops.
	HandleCallback(ctx context.Context, method domain.PaymentMethod, params map[string]string) (*domain.PaymentResult, error)

	// RefundPayment refunds a settled payment of a cancelled order through
	// the provider, when the provider supports refunds.
	RefundPayment(ctx context.Context, paymentID string) (*domain.Payment, error)

	// UpdateCODPayment settles or fails a cash-on-delivery payment; there
	// is no gateway involved.
	UpdateCODPayment(paymentID string, target domain.PaymentStatus) (*domain.Payment, error)

	// CancelExpiredPayments fails every pending payment older than the
	// retry period and cancels its order. Returns how many were expired.
	CancelExpiredPayments(ctx context.Context) (int, error)

	GetPaymentByID(userID, paymentID string) (*domain.Payment, error)
	GetPaymentByOrderID(userID, orderID string) (*domain.Payment, error)
	GetPendingPayment(orderID string) (*domain.Payment, error)
	GetPaymentsByUserID(userID string, page, limit int64) ([]*domain.Payment, int64, error)
}

type DefaultPaymentUsecase struct {
	PaymentRepo domain.PaymentRepository
	OrderRepo   domain.OrderRepository
	Orders      orderusecase.OrderUsecase
	Registry    *gateway.Registry
	Publisher   EventPublisher
	Metrics     *metrics.PaymentMetrics

	// Topic is the broker topic payment events are published on.
	Topic string
	// RetryPeriod is how long a pending payment stays payable before the
	// expiry sweep fails it and cancels the order.
	RetryPeriod time.Duration

	now func() time.Time
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	orderRepo domain.OrderRepository,
	orders orderusecase.OrderUsecase,
	registry *gateway.Registry,
	publisher EventPublisher,
	m *metrics.PaymentMetrics,
	topic string,
	retryPeriod time.Duration,
) *DefaultPaymentUsecase {
	return &DefaultPaymentUsecase{
		PaymentRepo: paymentRepo,
		OrderRepo:   orderRepo,
		Orders:      orders,
		Registry:    registry,
		Publisher:   publisher,
		Metrics:     m,
		Topic:       topic,
		RetryPeriod: retryPeriod,
		now:         time.Now,
	}
}

func (uc *DefaultPaymentUsecase) publishEvent(payment *domain.Payment) {
	if uc.Publisher == nil {
		return
	}
	err := uc.Publisher.PublishPaymentEvent(uc.Topic, kafka.PaymentEvent{
		PaymentID: payment.ID,
		OrderID:   payment.OrderID,
		UserID:    payment.UserID,
		Method:    string(payment.Method),
		Status:    string(payment.Status),
		Amount:    payment.Amount,
		Provider:  string(payment.Method),
	})
	if err != nil {
		slog.Error("failed to publish payment event",
			"payment_id", payment.ID,
			"order_id", payment.OrderID,
			"status", payment.Status,
			"error", err)
	}
}
