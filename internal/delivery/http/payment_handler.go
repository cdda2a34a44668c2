package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cherriedy/brewaco/internal/domain"
	paymentdto "github.com/cherriedy/brewaco/internal/usecase/dto/payment"
	paymentusecase "github.com/cherriedy/brewaco/internal/usecase/payment"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	payments paymentusecase.PaymentUsecase
}

func NewPaymentHandler(payments paymentusecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createPaymentRequest struct {
	OrderID   string `json:"order_id"`
	OrderInfo string `json:"order_info"`
	BankCode  string `json:"bank_code"`
}

type createPaymentResponse struct {
	Payment    paymentView `json:"payment"`
	PaymentURL string      `json:"payment_url,omitempty"`
	IsRetry    bool        `json:"is_retry"`
}

func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.OrderID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "order_id is required"})
	}

	out, err := h.payments.CreatePayment(c.Request().Context(), &paymentdto.CreatePaymentInput{
		OrderID:   req.OrderID,
		UserID:    userID(c),
		ClientIP:  c.RealIP(),
		OrderInfo: req.OrderInfo,
		BankCode:  req.BankCode,
	})
	if err != nil {
		return writeError(c, err)
	}

	status := http.StatusCreated
	if out.IsRetry {
		status = http.StatusOK
	}
	return c.JSON(status, createPaymentResponse{
		Payment:    toPaymentView(out.Payment),
		PaymentURL: out.PaymentURL,
		IsRetry:    out.IsRetry,
	})
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	payment, err := h.payments.GetPaymentByID(userID(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentView(payment))
}

func (h *PaymentHandler) GetOrderPayment(c echo.Context) error {
	payment, err := h.payments.GetPaymentByOrderID(userID(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentView(payment))
}

func (h *PaymentHandler) GetPendingPayment(c echo.Context) error {
	payment, err := h.payments.GetPendingPayment(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if payment.UserID != userID(c) {
		return writeError(c, domain.ErrPaymentUnauthorized)
	}
	return c.JSON(http.StatusOK, toPaymentView(payment))
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	payments, total, err := h.payments.GetPaymentsByUserID(userID(c), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	views := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, toPaymentView(p))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": views,
		"total":    total,
	})
}

func (h *PaymentHandler) RefundPayment(c echo.Context) error {
	payment, err := h.payments.RefundPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentView(payment))
}

type updateCODPaymentRequest struct {
	Status string `json:"status"`
}

func (h *PaymentHandler) UpdateCODPayment(c echo.Context) error {
	var req updateCODPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	payment, err := h.payments.UpdateCODPayment(c.Param("id"), domain.PaymentStatus(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentView(payment))
}

// MomoIPN receives Momo's server-to-server notification. Momo expects 204
// regardless of processing outcome; failures are logged and reconciled by
// the expiry sweep or a replayed notification.
func (h *PaymentHandler) MomoIPN(c echo.Context) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		slog.Warn("momo ipn: malformed body", "error", err)
		return c.NoContent(http.StatusNoContent)
	}

	params := make(map[string]string, len(body))
	for k, v := range body {
		params[k] = fmt.Sprint(v)
	}

	if _, err := h.payments.HandleCallback(c.Request().Context(), domain.MethodMomo, params); err != nil {
		slog.Warn("momo ipn: callback rejected", "error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

type vnpayIPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// VNPayIPN receives VNPay's server-to-server notification. VNPay retries
// until it gets HTTP 200 with a recognised RspCode, so every outcome maps
// to a 200 response.
func (h *PaymentHandler) VNPayIPN(c echo.Context) error {
	params := queryToMap(c)

	_, err := h.payments.HandleCallback(c.Request().Context(), domain.MethodVNPay, params)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, vnpayIPNResponse{RspCode: "00", Message: "Confirm Success"})
	case errors.Is(err, domain.ErrInvalidSignature):
		return c.JSON(http.StatusOK, vnpayIPNResponse{RspCode: "97", Message: "Invalid Checksum"})
	case errors.Is(err, domain.ErrPaymentNotFound), errors.Is(err, domain.ErrOrderNotFound):
		return c.JSON(http.StatusOK, vnpayIPNResponse{RspCode: "01", Message: "Order not found"})
	default:
		slog.Error("vnpay ipn: callback failed", "error", err)
		return c.JSON(http.StatusOK, vnpayIPNResponse{RspCode: "99", Message: "Unknown error"})
	}
}

// VNPayReturn is the buyer-facing redirect target after checkout. It only
// reports the verified outcome; the authoritative state change happens on
// the IPN path.
func (h *PaymentHandler) VNPayReturn(c echo.Context) error {
	params := queryToMap(c)

	result, err := h.payments.HandleCallback(c.Request().Context(), domain.MethodVNPay, params)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"order_id":      result.OrderRef,
		"status":        string(result.Status),
		"amount":        result.Amount,
		"response_code": result.ResponseCode,
	})
}

func queryToMap(c echo.Context) map[string]string {
	values := c.QueryParams()
	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}
