package coupon

import "errors"

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponNotUsable = errors.New("coupon is not active or has expired")

	ErrInvalidDiscountType  = errors.New("invalid discount type")
	ErrInvalidDiscountValue = errors.New("discount value must be positive and at most 100 for percentage coupons")
	ErrInvalidValidity      = errors.New("valid_from must be before valid_until")
	ErrInvalidCouponName    = errors.New("coupon name is required")
)
