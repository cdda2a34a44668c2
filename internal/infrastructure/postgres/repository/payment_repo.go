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

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

// CreatePayment inserts a payment row. The partial unique index on
// (order_id) WHERE status = 'PENDING' makes the one-pending-payment-per-
// order invariant hold even when two retry requests race.
func (r *DefaultPaymentRepository) CreatePayment(payment *domain.Payment) (string, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	model := mappers.ToGORMPayment(payment)

	if err := r.DB.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domain.ErrDuplicatePendingPayment
		}
		return "", err
	}
	return payment.ID, nil
}

func (r *DefaultPaymentRepository) GetPaymentByID(paymentID string) (*domain.Payment, error) {
	var model models.PaymentModel
	if err := r.DB.First(&model, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

func (r *DefaultPaymentRepository) GetPaymentByOrderID(orderID string) (*domain.Payment, error) {
	var model models.PaymentModel
	if err := r.DB.Order("created_at DESC").First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

// GetPendingPaymentByOrderID returns (nil, nil) when the order has no
// open payment: absence is the normal case for a first attempt.
func (r *DefaultPaymentRepository) GetPendingPaymentByOrderID(orderID string) (*domain.Payment, error) {
	var model models.PaymentModel
	err := r.DB.First(&model, "order_id = ? AND status = ?", orderID, domain.PaymentStatusPending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

func (r *DefaultPaymentRepository) GetPaymentByTransactionID(transactionID string) (*domain.Payment, error) {
	var model models.PaymentModel
	if err := r.DB.First(&model, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&model), nil
}

func (r *DefaultPaymentRepository) GetPaymentsByUserID(userID string, page, limit int64) ([]*domain.Payment, int64, error) {
	var paymentModels []models.PaymentModel
	var total int64

	baseQuery := r.DB.Model(&models.PaymentModel{}).Where("user_id = ?", userID)
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&paymentModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find payments: %w", err)
	}

	payments := make([]*domain.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = mappers.ToDomainPayment(&model)
	}
	return payments, total, nil
}

func (r *DefaultPaymentRepository) FindExpiredPending(cutoff time.Time) ([]*domain.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.DB.
		Where("status = ?", domain.PaymentStatusPending).
		Where("created_at < ?", cutoff).
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*domain.Payment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = mappers.ToDomainPayment(&model)
	}
	return payments, nil
}

// MarkExpired claims the payment for the sweep: only the caller whose
// conditional update actually flips PENDING to FAILED proceeds to cancel
// the order, so overlapping sweeps never double-restore stock.
func (r *DefaultPaymentRepository) MarkExpired(paymentID string, stampAt time.Time) (bool, error) {
	res := r.DB.Model(&models.PaymentModel{}).
		Where("id = ? AND status = ?", paymentID, domain.PaymentStatusPending).
		Updates(map[string]any{
			"status":    domain.PaymentStatusFailed,
			"failed_at": stampAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultPaymentRepository) UpdatePaymentResult(payment *domain.Payment) error {
	updates := map[string]any{
		"status":                payment.Status,
		"transaction_id":        payment.TransactionID,
		"gateway_response_code": payment.GatewayResponseCode,
		"raw_response":          payment.RawResponse,
	}
	if payment.BankCode != "" {
		updates["bank_code"] = payment.BankCode
	}
	switch payment.Status {
	case domain.PaymentStatusPaid:
		updates["paid_at"] = payment.PaidAt
	case domain.PaymentStatusFailed:
		updates["failed_at"] = payment.FailedAt
	case domain.PaymentStatusRefunded:
		updates["refunded_at"] = payment.RefundedAt
	}

	return r.DB.Model(&models.PaymentModel{}).
		Where("id = ?", payment.ID).
		Updates(updates).Error
}

func (r *DefaultPaymentRepository) SavePayURL(paymentID, payURL string) error {
	return r.DB.Model(&models.PaymentModel{}).
		Where("id = ?", paymentID).
		Update("pay_url", payURL).Error
}
