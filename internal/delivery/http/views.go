package http

import (
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
)

type orderItemView struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

type shippingAddressView struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state,omitempty"`
	Zip           string `json:"zip,omitempty"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	RecipientName string `json:"recipient_name"`
}

type orderView struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Items           []orderItemView     `json:"items"`
	TotalAmount     float64             `json:"total_amount"`
	PaymentMethod   string              `json:"payment_method"`
	ShippingAddress shippingAddressView `json:"shipping_address"`
	PromotionCode   string              `json:"promotion_code,omitempty"`
	DiscountAmount  float64             `json:"discount_amount,omitempty"`
	Note            string              `json:"note,omitempty"`
	OrderStatus     string              `json:"order_status"`
	PaymentStatus   string              `json:"payment_status"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ShippingAt      *time.Time          `json:"shipping_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	FailedAt        *time.Time          `json:"failed_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type paymentView struct {
	ID                  string     `json:"id"`
	OrderID             string     `json:"order_id"`
	Method              string     `json:"method"`
	TransactionID       string     `json:"transaction_id,omitempty"`
	Amount              float64    `json:"amount"`
	BankCode            string     `json:"bank_code,omitempty"`
	GatewayResponseCode string     `json:"gateway_response_code,omitempty"`
	PayURL              string     `json:"pay_url,omitempty"`
	Status              string     `json:"status"`
	PaidAt              *time.Time `json:"paid_at,omitempty"`
	FailedAt            *time.Time `json:"failed_at,omitempty"`
	RefundedAt          *time.Time `json:"refunded_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func toOrderView(o *domain.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
		})
	}
	return orderView{
		ID:            o.ID,
		UserID:        o.UserID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		ShippingAddress: shippingAddressView{
			Street:        o.ShippingAddress.Street,
			City:          o.ShippingAddress.City,
			State:         o.ShippingAddress.State,
			Zip:           o.ShippingAddress.Zip,
			Country:       o.ShippingAddress.Country,
			Phone:         o.ShippingAddress.Phone,
			RecipientName: o.ShippingAddress.RecipientName,
		},
		PromotionCode:  o.PromotionCode,
		DiscountAmount: o.DiscountAmount,
		Note:           o.Note,
		OrderStatus:    string(o.OrderStatus),
		PaymentStatus:  string(o.PaymentStatus),
		ConfirmedAt:    o.ConfirmedAt,
		ShippingAt:     o.ShippingAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
		PaidAt:         o.PaidAt,
		FailedAt:       o.FailedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toPaymentView(p *domain.Payment) paymentView {
	return paymentView{
		ID:                  p.ID,
		OrderID:             p.OrderID,
		Method:              string(p.Method),
		TransactionID:       p.TransactionID,
		Amount:              p.Amount,
		BankCode:            p.BankCode,
		GatewayResponseCode: p.GatewayResponseCode,
		PayURL:              p.PayURL,
		Status:              string(p.Status),
		PaidAt:              p.PaidAt,
		FailedAt:            p.FailedAt,
		RefundedAt:          p.RefundedAt,
		CreatedAt:           p.CreatedAt,
	}
}
