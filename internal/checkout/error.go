package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidLine         = errors.New("cart line has an invalid quantity or price")
	ErrMixedStores         = errors.New("cart contains items from more than one store")
	ErrCouponStoreMismatch = errors.New("coupon does not apply to this store")

	ErrInvalidCallback = errors.New("payment callback is missing orderId, paymentKey or amount")
	ErrAmountMismatch  = errors.New("paid amount does not match order amount")
	ErrOrderNotPending = errors.New("order is no longer awaiting payment")
)
