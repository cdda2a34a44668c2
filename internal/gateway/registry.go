package gateway

import (
	"github.com/cherriedy/brewaco/internal/domain"
)

// Registry resolves a payment method to its gateway adapter. COD has no
// adapter and is settled synchronously by the payment usecase.
type Registry struct {
	gateways map[domain.PaymentMethod]domain.PaymentGateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[domain.PaymentMethod]domain.PaymentGateway)}
}

func (r *Registry) Register(method domain.PaymentMethod, gw domain.PaymentGateway) {
	r.gateways[method] = gw
}

func (r *Registry) Resolve(method domain.PaymentMethod) (domain.PaymentGateway, error) {
	gw, ok := r.gateways[method]
	if !ok {
		return nil, domain.ErrGatewayNotSupported
	}
	return gw, nil
}

// ResolveRefunder returns the adapter only if it supports refunds.
func (r *Registry) ResolveRefunder(method domain.PaymentMethod) (domain.Refunder, error) {
	gw, err := r.Resolve(method)
	if err != nil {
		return nil, err
	}
	refunder, ok := gw.(domain.Refunder)
	if !ok {
		return nil, domain.ErrRefundNotSupported
	}
	return refunder, nil
}
