package usecase

import (
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/infrastructure/metrics"
	orderdto "github.com/cherriedy/brewaco/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(input *orderdto.CreateOrderInput) (*domain.Order, error)
	GetOrderByID(orderID string) (*domain.Order, error)
	GetOrdersByUserID(userID string, page, limit int64) ([]*domain.Order, int64, error)

	// UpdateOrderStatus advances the fulfillment status. A CANCELLED target
	// is routed through the cancellation flow so stock is restored.
	UpdateOrderStatus(orderID string, target domain.OrderStatus) (*domain.Order, error)

	// UpdateOrderPaymentStatus mirrors a settled payment outcome onto the
	// order. Re-applying the current value is a no-op.
	UpdateOrderPaymentStatus(orderID string, target domain.OrderPaymentStatus) (*domain.Order, error)

	// CancelOrder is the buyer-initiated cancellation with ownership check.
	CancelOrder(userID, orderID string) (*domain.Order, error)

	// SystemCancelOrder cancels without an ownership check. Used by the
	// payment expiry sweep.
	SystemCancelOrder(orderID string) (*domain.Order, error)
}

type DefaultOrderUsecase struct {
	OrderRepo   domain.OrderRepository
	ProductRepo domain.ProductRepository
	Metrics     *metrics.PaymentMetrics

	now func() time.Time
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	productRepo domain.ProductRepository,
	m *metrics.PaymentMetrics,
) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		Metrics:     m,
		now:         time.Now,
	}
}
