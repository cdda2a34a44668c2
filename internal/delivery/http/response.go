package http

import (
	"errors"
	"net/http"

	"github.com/cherriedy/brewaco/internal/domain"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain sentinel errors onto HTTP status codes. Unknown
// errors become 500 with a generic body so internals do not leak.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrProductNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrPaymentUnauthorized):
		return c.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidOrderStatus),
		errors.Is(err, domain.ErrOrderInvalidTransition),
		errors.Is(err, domain.ErrPaymentInvalidTransition),
		errors.Is(err, domain.ErrOrderCannotBeCancelled),
		errors.Is(err, domain.ErrPaymentNotPaid),
		errors.Is(err, domain.ErrOrderNotCancelled),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrDuplicatePendingPayment),
		errors.Is(err, domain.ErrPaymentExpired):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrGatewayNotSupported),
		errors.Is(err, domain.ErrRefundNotSupported),
		errors.Is(err, domain.ErrPaymentMethodNotAllowed),
		errors.Is(err, domain.ErrInvalidSignature):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrGatewayUnavailable):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: domain.ErrGatewayUnavailable.Error()})
	}

	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
