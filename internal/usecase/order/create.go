package usecase

import (
	"fmt"

	"github.com/cherriedy/brewaco/internal/domain"
	orderdto "github.com/cherriedy/brewaco/internal/usecase/dto/order"
	"github.com/google/uuid"
)

// CreateOrder validates the requested items against the catalog, snapshots
// name and unit price into the order lines and persists the order. Stock is
// decremented atomically inside the repository transaction, so the pre-check
// here only produces a friendlier error before the write is attempted.
func (uc *DefaultOrderUsecase) CreateOrder(input *orderdto.CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("create order: empty items")
	}

	productIDs := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("create order: product %s: invalid quantity %d", item.ProductID, item.Quantity)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := uc.ProductRepo.GetProductsByIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("create order: load products: %w", err)
	}
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(input.Items))
	var total float64
	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("create order: product %s: %w", item.ProductID, domain.ErrProductNotFound)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("create order: product %s: %w", item.ProductID, domain.ErrInsufficientStock)
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImageURL:  product.ImageURL,
			Quantity:  item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}
	total -= input.DiscountAmount
	if total < 0 {
		total = 0
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          input.UserID,
		Items:           items,
		TotalAmount:     total,
		PaymentMethod:   input.PaymentMethod,
		ShippingAddress: input.ShippingAddress,
		PromotionCode:   input.PromotionCode,
		DiscountAmount:  input.DiscountAmount,
		Note:            input.Note,
		OrderStatus:     domain.OrderStatusPending,
		PaymentStatus:   domain.OrderPaymentPending,
	}

	if _, err := uc.OrderRepo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}
