package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires handlers onto the echo instance. Gateway callback routes
// are unauthenticated: providers cannot carry our JWTs, their requests are
// authenticated by signature verification instead.
func NewRouter(orders *OrderHandler, payments *PaymentHandler, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/api/v1/payments/callback/momo", payments.MomoIPN)
	e.GET("/api/v1/payments/callback/vnpay", payments.VNPayIPN)
	e.GET("/api/v1/payments/callback/vnpay/return", payments.VNPayReturn)

	api := e.Group("/api/v1", JWTAuth(jwtSecret))

	api.POST("/orders", orders.CreateOrder)
	api.GET("/orders", orders.ListOrders)
	api.GET("/orders/:id", orders.GetOrder)
	api.POST("/orders/:id/cancel", orders.CancelOrder)
	api.PATCH("/orders/:id/status", orders.UpdateOrderStatus)
	api.GET("/orders/:id/payment", payments.GetOrderPayment)
	api.GET("/orders/:id/payment/pending", payments.GetPendingPayment)

	api.POST("/payments", payments.CreatePayment)
	api.GET("/payments", payments.ListPayments)
	api.GET("/payments/:id", payments.GetPayment)
	api.POST("/payments/:id/refund", payments.RefundPayment)
	api.PATCH("/payments/:id/cod", payments.UpdateCODPayment)

	return e
}
