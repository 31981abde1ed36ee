package httpapi

import (
	"errors"
	"net/http"

	"storefront-be/internal/checkout"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

var statusByError = []struct {
	err  error
	code int
}{
	{checkout.ErrInvalidCallback, http.StatusBadRequest},
	{checkout.ErrAmountMismatch, http.StatusBadRequest},

	{order.ErrForbidden, http.StatusForbidden},

	{order.ErrOrderNotFound, http.StatusNotFound},
	{payment.ErrPaymentNotFound, http.StatusNotFound},

	{order.ErrInvalidTransition, http.StatusConflict},
	{order.ErrPaymentRequired, http.StatusConflict},
	{checkout.ErrOrderNotPending, http.StatusConflict},
	{payment.ErrNotApproved, http.StatusConflict},

	{payment.ErrGatewayDown, http.StatusServiceUnavailable},
}

// writeServiceError maps domain errors to a status code and a JSON
// {"error": "..."} body. Unknown errors are logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			utils.WriteJSONError(w, err.Error(), m.code)
			return
		}
	}

	var gwErr *payment.GatewayError
	if errors.As(err, &gwErr) {
		logger.FromCtx(r.Context()).Warn("payment gateway rejected request",
			zap.Int("status", gwErr.StatusCode),
			zap.String("code", gwErr.Code),
		)
		utils.WriteJSON(w, http.StatusBadGateway, map[string]string{
			"error": gwErr.Message,
			"code":  gwErr.Code,
		})
		return
	}

	logger.FromCtx(r.Context()).Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
}
