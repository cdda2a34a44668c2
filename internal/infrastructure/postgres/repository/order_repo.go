package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/mappers"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

// CreateOrder inserts the order, decrements stock for every line item and
// removes the ordered products from the user cart in one transaction.
// Stock decrement is a guarded single-row update, so two concurrent
// orders cannot oversell the same product.
func (r *DefaultOrderRepository) CreateOrder(order *domain.Order) (string, error) {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	orderModel := mappers.ToGORMOrder(order)

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			res := tx.Model(&models.ProductModel{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				var count int64
				if err := tx.Model(&models.ProductModel{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return domain.ErrProductNotFound
				}
				return domain.ErrInsufficientStock
			}
		}

		if err := tx.Create(orderModel).Error; err != nil {
			return err
		}

		productIDs := make([]string, len(order.Items))
		for i, item := range order.Items {
			productIDs[i] = item.ProductID
		}
		return tx.Where("user_id = ? AND product_id IN ?", order.UserID, productIDs).
			Delete(&models.CartItemModel{}).Error
	})
	if err != nil {
		return "", err
	}

	return order.ID, nil
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetOrdersByUserID(userID string, page, limit int64) ([]*domain.Order, int64, error) {
	var orderModels []models.OrderModel
	var total int64

	baseQuery := r.DB.Model(&models.OrderModel{}).Where("user_id = ?", userID)
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Preload("Items").
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&orderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}
	return orders, total, nil
}

// orderStatusStampColumn maps a target fulfillment status to the
// timestamp column stamped exactly once when the transition fires.
func orderStatusStampColumn(status domain.OrderStatus) string {
	switch status {
	case domain.OrderStatusConfirmed:
		return "confirmed_at"
	case domain.OrderStatusShipping:
		return "shipping_at"
	case domain.OrderStatusDelivered:
		return "delivered_at"
	case domain.OrderStatusCancelled:
		return "cancelled_at"
	}
	return ""
}

func orderPaymentStampColumn(status domain.OrderPaymentStatus) string {
	switch status {
	case domain.OrderPaymentPaid:
		return "paid_at"
	case domain.OrderPaymentFailed:
		return "failed_at"
	}
	return ""
}

func (r *DefaultOrderRepository) UpdateOrderStatus(orderID string, from, to domain.OrderStatus, stampAt time.Time) (bool, error) {
	updates := map[string]any{"order_status": to}
	if col := orderStatusStampColumn(to); col != "" {
		updates[col] = stampAt
	}

	res := r.DB.Model(&models.OrderModel{}).
		Where("id = ? AND order_status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultOrderRepository) UpdateOrderPaymentStatus(orderID string, from, to domain.OrderPaymentStatus, stampAt time.Time) (bool, error) {
	updates := map[string]any{"payment_status": to}
	if col := orderPaymentStampColumn(to); col != "" {
		updates[col] = stampAt
	}

	res := r.DB.Model(&models.OrderModel{}).
		Where("id = ? AND payment_status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
