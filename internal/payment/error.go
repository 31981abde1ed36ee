package payment

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound  = errors.New("payment record not found")
	ErrPaymentNotFound = errors.New("payment not found at gateway")
	ErrGatewayDown     = errors.New("payment gateway unavailable")
	ErrNotApproved     = errors.New("payment is not approved at gateway")
)

// GatewayError is a non-2xx answer from the gateway.
type GatewayError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("toss error %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Temporary reports whether retrying may succeed.
func (e *GatewayError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
