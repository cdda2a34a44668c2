package usecase

import (
	"testing"

	"github.com/cherriedy/brewaco/internal/domain"
	orderdto "github.com/cherriedy/brewaco/internal/usecase/dto/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *fakeProductRepo {
	return newFakeProductRepo(
		&domain.Product{ID: "p-espresso", Name: "Espresso Blend 250g", Price: 185000, Stock: 10},
		&domain.Product{ID: "p-v60", Name: "V60 Dripper", Price: 320000, Stock: 2},
	)
}

func TestCreateOrderSnapshotsCatalogData(t *testing.T) {
	orders := newFakeOrderRepo()
	products := testCatalog()
	uc := NewDefaultOrderUsecase(orders, products, nil)

	order, err := uc.CreateOrder(&orderdto.CreateOrderInput{
		UserID:        "user-1",
		PaymentMethod: domain.MethodVNPay,
		Items: []orderdto.OrderItemInput{
			{ProductID: "p-espresso", Quantity: 2},
			{ProductID: "p-v60", Quantity: 1},
		},
		DiscountAmount: 50000,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, domain.OrderPaymentPending, order.PaymentStatus)
	assert.Equal(t, 2*185000.0+320000.0-50000.0, order.TotalAmount)

	// Line items carry catalog snapshots, not client-sent values.
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Espresso Blend 250g", order.Items[0].Name)
	assert.Equal(t, 185000.0, order.Items[0].Price)

	stored, err := orders.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.TotalAmount, stored.TotalAmount)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	uc := NewDefaultOrderUsecase(newFakeOrderRepo(), testCatalog(), nil)

	_, err := uc.CreateOrder(&orderdto.CreateOrderInput{
		UserID: "user-1",
		Items:  []orderdto.OrderItemInput{{ProductID: "p-ghost", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	uc := NewDefaultOrderUsecase(newFakeOrderRepo(), testCatalog(), nil)

	_, err := uc.CreateOrder(&orderdto.CreateOrderInput{
		UserID: "user-1",
		Items:  []orderdto.OrderItemInput{{ProductID: "p-v60", Quantity: 3}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestCreateOrderRejectsEmptyAndInvalidItems(t *testing.T) {
	uc := NewDefaultOrderUsecase(newFakeOrderRepo(), testCatalog(), nil)

	_, err := uc.CreateOrder(&orderdto.CreateOrderInput{UserID: "user-1"})
	assert.Error(t, err)

	_, err = uc.CreateOrder(&orderdto.CreateOrderInput{
		UserID: "user-1",
		Items:  []orderdto.OrderItemInput{{ProductID: "p-v60", Quantity: 0}},
	})
	assert.Error(t, err)
}
