package repository

import (
	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/mappers"
	"github.com/cherriedy/brewaco/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultProductRepository struct {
	DB *gorm.DB
}

func NewDefaultProductRepository(db *gorm.DB) *DefaultProductRepository {
	return &DefaultProductRepository{DB: db}
}

func (r *DefaultProductRepository) GetProductsByIDs(productIDs []string) ([]*domain.Product, error) {
	var productModels []models.ProductModel
	if err := r.DB.Where("id IN ?", productIDs).Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(productModels))
	for i, model := range productModels {
		products[i] = mappers.ToDomainProduct(&model)
	}
	return products, nil
}

// AdjustStock applies a single atomic increment. Decrements are guarded
// so the counter can never go negative under concurrent orders.
func (r *DefaultProductRepository) AdjustStock(productID string, delta int) error {
	query := r.DB.Model(&models.ProductModel{}).Where("id = ?", productID)
	if delta < 0 {
		query = query.Where("stock >= ?", -delta)
	}

	res := query.Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.Model(&models.ProductModel{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrProductNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}
