package mappers

import (
	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	items := make([]domain.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		}
	}

	return &domain.Order{
		ID:            model.ID,
		UserID:        model.UserID,
		Items:         items,
		TotalAmount:   model.TotalAmount,
		PaymentMethod: model.PaymentMethod,
		ShippingAddress: domain.ShippingAddress{
			Street:        model.Street,
			City:          model.City,
			State:         model.State,
			Zip:           model.Zip,
			Country:       model.Country,
			Phone:         model.Phone,
			RecipientName: model.RecipientName,
		},
		PromotionCode:  model.PromotionCode,
		DiscountAmount: model.DiscountAmount,
		Note:           model.Note,
		OrderStatus:    model.OrderStatus,
		PaymentStatus:  model.PaymentStatus,
		ConfirmedAt:    model.ConfirmedAt,
		ShippingAt:     model.ShippingAt,
		DeliveredAt:    model.DeliveredAt,
		CancelledAt:    model.CancelledAt,
		PaidAt:         model.PaidAt,
		FailedAt:       model.FailedAt,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	items := make([]models.OrderItemModel, len(order.Items))
	for i, item := range order.Items {
		items[i] = models.OrderItemModel{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		}
	}

	return &models.OrderModel{
		ID:             order.ID,
		UserID:         order.UserID,
		TotalAmount:    order.TotalAmount,
		PaymentMethod:  order.PaymentMethod,
		OrderStatus:    order.OrderStatus,
		PaymentStatus:  order.PaymentStatus,
		PromotionCode:  order.PromotionCode,
		DiscountAmount: order.DiscountAmount,
		Note:           order.Note,
		Street:         order.ShippingAddress.Street,
		City:           order.ShippingAddress.City,
		State:          order.ShippingAddress.State,
		Zip:            order.ShippingAddress.Zip,
		Country:        order.ShippingAddress.Country,
		Phone:          order.ShippingAddress.Phone,
		RecipientName:  order.ShippingAddress.RecipientName,
		ConfirmedAt:    order.ConfirmedAt,
		ShippingAt:     order.ShippingAt,
		DeliveredAt:    order.DeliveredAt,
		CancelledAt:    order.CancelledAt,
		PaidAt:         order.PaidAt,
		FailedAt:       order.FailedAt,
		Items:          items,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}
