package usecase

import (
	"sync"
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo(orders ...*domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) CreateOrder(order *domain.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.CreatedAt = time.Now()
	r.orders[order.ID] = order
	return order.ID, nil
}

func (r *fakeOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) GetOrdersByUserID(userID string, page, limit int64) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(orderID string, from, to domain.OrderStatus, stampAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.OrderStatus != from {
		return false, nil
	}
	o.OrderStatus = to
	switch to {
	case domain.OrderStatusConfirmed:
		o.ConfirmedAt = &stampAt
	case domain.OrderStatusShipping:
		o.ShippingAt = &stampAt
	case domain.OrderStatusDelivered:
		o.DeliveredAt = &stampAt
	case domain.OrderStatusCancelled:
		o.CancelledAt = &stampAt
	}
	return true, nil
}

func (r *fakeOrderRepo) UpdateOrderPaymentStatus(orderID string, from, to domain.OrderPaymentStatus, stampAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.PaymentStatus != from {
		return false, nil
	}
	o.PaymentStatus = to
	switch to {
	case domain.OrderPaymentPaid:
		o.PaidAt = &stampAt
	case domain.OrderPaymentFailed:
		o.FailedAt = &stampAt
	}
	return true, nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetProductsByIDs(productIDs []string) ([]*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Product
	for _, id := range productIDs {
		if p, ok := r.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AdjustStock(productID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) stock(productID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[productID].Stock
}
