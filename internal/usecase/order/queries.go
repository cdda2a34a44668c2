package usecase

import "github.com/cherriedy/brewaco/internal/domain"

func (uc *DefaultOrderUsecase) GetOrderByID(orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(orderID)
}

func (uc *DefaultOrderUsecase) GetOrdersByUserID(userID string, page, limit int64) ([]*domain.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.OrderRepo.GetOrdersByUserID(userID, page, limit)
}
