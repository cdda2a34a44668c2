package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/gateway"
	"github.com/cherriedy/brewaco/internal/infrastructure/kafka"
	orderusecase "github.com/cherriedy/brewaco/internal/usecase/order"
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
	return nil, 0, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(orderID string, from, to domain.OrderStatus, stampAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.OrderStatus != from {
		return false, nil
	}
	o.OrderStatus = to
	if to == domain.OrderStatusCancelled {
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

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
}

func newFakePaymentRepo(payments ...*domain.Payment) *fakePaymentRepo {
	r := &fakePaymentRepo{payments: make(map[string]*domain.Payment)}
	for _, p := range payments {
		r.payments[p.ID] = p
	}
	return r
}

func (r *fakePaymentRepo) CreatePayment(payment *domain.Payment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if payment.Status == domain.PaymentStatusPending {
		for _, p := range r.payments {
			if p.OrderID == payment.OrderID && p.Status == domain.PaymentStatusPending {
				return "", domain.ErrDuplicatePendingPayment
			}
		}
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now()
	}
	cp := *payment
	r.payments[payment.ID] = &cp
	return payment.ID, nil
}

func (r *fakePaymentRepo) GetPaymentByID(paymentID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetPaymentByOrderID(orderID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found []*domain.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			found = append(found, p)
		}
	}
	if len(found) == 0 {
		return nil, domain.ErrPaymentNotFound
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.After(found[j].CreatedAt) })
	cp := *found[0]
	return &cp, nil
}

func (r *fakePaymentRepo) GetPendingPaymentByOrderID(orderID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.OrderID == orderID && p.Status == domain.PaymentStatusPending {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) GetPaymentByTransactionID(transactionID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (r *fakePaymentRepo) GetPaymentsByUserID(userID string, page, limit int64) ([]*domain.Payment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) FindExpiredPending(cutoff time.Time) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.Status == domain.PaymentStatusPending && p.CreatedAt.Before(cutoff) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) MarkExpired(paymentID string, stampAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[paymentID]
	if !ok || p.Status != domain.PaymentStatusPending {
		return false, nil
	}
	p.Status = domain.PaymentStatusFailed
	p.FailedAt = &stampAt
	return true, nil
}

func (r *fakePaymentRepo) UpdatePaymentResult(payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) SavePayURL(paymentID, payURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.payments[paymentID]; ok {
		p.PayURL = payURL
	}
	return nil
}

func (r *fakePaymentRepo) byOrder(orderID string) []*domain.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.OrderID == orderID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

type fakeGateway struct {
	createResult *domain.CreatePaymentResult
	createErr    error
	verifyResult *domain.PaymentResult
	verifyErr    error
	createCalls  int
}

func (g *fakeGateway) CreatePayment(ctx context.Context, orderID string, amount float64, meta domain.CreatePaymentMeta) (*domain.CreatePaymentResult, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	if g.createResult != nil {
		return g.createResult, nil
	}
	return &domain.CreatePaymentResult{
		RedirectURL: "https://pay.example.com/redirect/" + orderID,
		OrderRef:    orderID,
	}, nil
}

func (g *fakeGateway) VerifyPayment(params map[string]string) (*domain.PaymentResult, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verifyResult, nil
}

type fakeRefundGateway struct {
	fakeGateway
	refundOK     bool
	refundErr    error
	refundedTxn  string
	refundAmount float64
}

func (g *fakeRefundGateway) RefundPayment(ctx context.Context, transactionID string, amount float64) (bool, error) {
	g.refundedTxn = transactionID
	g.refundAmount = amount
	return g.refundOK, g.refundErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.PaymentEvent
}

func (p *fakePublisher) PublishPaymentEvent(topic string, event kafka.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	uc        *DefaultPaymentUsecase
	orders    *fakeOrderRepo
	payments  *fakePaymentRepo
	products  *fakeProductRepo
	registry  *gateway.Registry
	publisher *fakePublisher
}

func newFixture(orders ...*domain.Order) *fixture {
	orderRepo := newFakeOrderRepo(orders...)
	products := newFakeProductRepo(
		&domain.Product{ID: "p-espresso", Name: "Espresso Blend 250g", Price: 185000, Stock: 10},
	)
	paymentRepo := newFakePaymentRepo()
	registry := gateway.NewRegistry()
	publisher := &fakePublisher{}

	orderUC := orderusecase.NewDefaultOrderUsecase(orderRepo, products, nil)
	uc := NewDefaultPaymentUsecase(
		paymentRepo, orderRepo, orderUC, registry, publisher, nil,
		"payment-events", time.Hour,
	)

	return &fixture{
		uc:        uc,
		orders:    orderRepo,
		payments:  paymentRepo,
		products:  products,
		registry:  registry,
		publisher: publisher,
	}
}

func vnpayOrder(id string) *domain.Order {
	return &domain.Order{
		ID:            id,
		UserID:        "user-1",
		PaymentMethod: domain.MethodVNPay,
		Items: []domain.OrderItem{
			{ProductID: "p-espresso", Quantity: 2, Price: 185000},
		},
		TotalAmount:   370000,
		OrderStatus:   domain.OrderStatusPending,
		PaymentStatus: domain.OrderPaymentPending,
	}
}
