package mappers

import (
	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	return &domain.Payment{
		ID:                  model.ID,
		OrderID:             model.OrderID,
		UserID:              model.UserID,
		Method:              model.Method,
		TransactionID:       model.TransactionID,
		Amount:              model.Amount,
		BankCode:            model.BankCode,
		GatewayResponseCode: model.GatewayResponseCode,
		PayURL:              model.PayURL,
		RawResponse:         model.RawResponse,
		Status:              model.Status,
		PaidAt:              model.PaidAt,
		FailedAt:            model.FailedAt,
		RefundedAt:          model.RefundedAt,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:                  payment.ID,
		OrderID:             payment.OrderID,
		UserID:              payment.UserID,
		Method:              payment.Method,
		TransactionID:       payment.TransactionID,
		Amount:              payment.Amount,
		BankCode:            payment.BankCode,
		GatewayResponseCode: payment.GatewayResponseCode,
		PayURL:              payment.PayURL,
		RawResponse:         payment.RawResponse,
		Status:              payment.Status,
		PaidAt:              payment.PaidAt,
		FailedAt:            payment.FailedAt,
		RefundedAt:          payment.RefundedAt,
		CreatedAt:           payment.CreatedAt,
		UpdatedAt:           payment.UpdatedAt,
	}
}

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		Price:     model.Price,
		ImageURL:  model.ImageURL,
		Stock:     model.Stock,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
