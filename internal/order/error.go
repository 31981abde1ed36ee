package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrForbidden         = errors.New("order belongs to another account")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrPaymentRequired   = errors.New("order has no completed payment")

	ErrInsufficientStock = errors.New("insufficient stock for order item")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
)
