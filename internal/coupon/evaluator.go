package coupon

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Evaluate returns the discount c grants on subtotal, in whole currency
// units. The coupon is assumed to be already filtered with Usable.
//
// The result is always within [0, subtotal]:
//   - below MinOrderAmount the discount is zero
//   - percentage coupons take floor(subtotal * value / 100)
//   - fixed coupons take floor(value)
//   - MaxDiscountAmount caps the result when set
func Evaluate(subtotal int64, c Coupon) int64 {
	if subtotal <= 0 {
		return 0
	}
	if c.MinOrderAmount != nil && subtotal < *c.MinOrderAmount {
		return 0
	}

	var discount int64
	switch c.DiscountType {
	case DiscountPercentage:
		discount = decimal.NewFromInt(subtotal).
			Mul(c.DiscountValue).
			Div(hundred).
			Floor().
			IntPart()
	case DiscountFixed:
		discount = c.DiscountValue.Floor().IntPart()
	default:
		return 0
	}

	if c.MaxDiscountAmount != nil && discount > *c.MaxDiscountAmount {
		discount = *c.MaxDiscountAmount
	}
	if discount < 0 {
		return 0
	}
	if discount > subtotal {
		return subtotal
	}
	return discount
}
