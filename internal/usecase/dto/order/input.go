package orderdto

import "github.com/cherriedy/brewaco/internal/domain"

type OrderItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	UserID          string
	Items           []OrderItemInput
	PaymentMethod   domain.PaymentMethod
	ShippingAddress domain.ShippingAddress
	PromotionCode   string
	DiscountAmount  float64
	Note            string
}
