package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"storefront-be/internal/checkout"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
)

// paymentSuccess handles the redirect back from the hosted payment window.
// The query carries orderId, paymentKey and amount as set by the gateway.
func (h *Handler) paymentSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orderID, err := callbackOrderID(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	paymentKey := q.Get("paymentKey")
	amount, err := strconv.ParseInt(q.Get("amount"), 10, 64)
	if paymentKey == "" || err != nil {
		writeServiceError(w, r, checkout.ErrInvalidCallback)
		return
	}

	if _, err := h.orders.GetDetail(r.Context(), orderID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	out, err := h.reconciler.HandleSuccess(r.Context(), orderID, paymentKey, amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) paymentFail(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orderID, err := callbackOrderID(q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	code := q.Get("code")
	if code == "" {
		code = "UNKNOWN"
	}

	if _, err := h.orders.GetDetail(r.Context(), orderID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	out, err := h.reconciler.HandleFailure(r.Context(), orderID, code, q.Get("message"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

// callbackOrderID reads the orderId the gateway echoes back. Order ids are
// UUIDs; anything else never reaches the database.
func callbackOrderID(q url.Values) (string, error) {
	orderID := q.Get("orderId")
	if orderID == "" {
		return "", fmt.Errorf("%w: orderId is required", checkout.ErrInvalidCallback)
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return "", fmt.Errorf("%w: malformed orderId", checkout.ErrInvalidCallback)
	}
	return orderID, nil
}
