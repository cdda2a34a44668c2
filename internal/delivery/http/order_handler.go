package http

import (
	"net/http"
	"strconv"

	"github.com/cherriedy/brewaco/internal/domain"
	orderdto "github.com/cherriedy/brewaco/internal/usecase/dto/order"
	orderusecase "github.com/cherriedy/brewaco/internal/usecase/order"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders orderusecase.OrderUsecase
}

func NewOrderHandler(orders orderusecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	PaymentMethod   string              `json:"payment_method"`
	ShippingAddress shippingAddressView `json:"shipping_address"`
	PromotionCode   string              `json:"promotion_code"`
	DiscountAmount  float64             `json:"discount_amount"`
	Note            string              `json:"note"`
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	input := &orderdto.CreateOrderInput{
		UserID:        userID(c),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		ShippingAddress: domain.ShippingAddress{
			Street:        req.ShippingAddress.Street,
			City:          req.ShippingAddress.City,
			State:         req.ShippingAddress.State,
			Zip:           req.ShippingAddress.Zip,
			Country:       req.ShippingAddress.Country,
			Phone:         req.ShippingAddress.Phone,
			RecipientName: req.ShippingAddress.RecipientName,
		},
		PromotionCode:  req.PromotionCode,
		DiscountAmount: req.DiscountAmount,
		Note:           req.Note,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, orderdto.OrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderView(order))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.GetOrderByID(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if order.UserID != userID(c) {
		return writeError(c, domain.ErrPaymentUnauthorized)
	}
	return c.JSON(http.StatusOK, toOrderView(order))
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	orders, total, err := h.orders.GetOrdersByUserID(userID(c), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": views,
		"total":  total,
	})
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	order, err := h.orders.CancelOrder(userID(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderView(order))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	order, err := h.orders.UpdateOrderStatus(c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderView(order))
}
