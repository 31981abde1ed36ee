package checkout

import (
	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"
)

// Settlement is the priced result of a single-store cart.
// FinalAmount = TotalAmount - DiscountAmount and is never negative.
type Settlement struct {
	StoreID        string      `json:"store_id"`
	Lines          []cart.Line `json:"lines"`
	TotalAmount    int64       `json:"total_amount"`
	DiscountAmount int64       `json:"discount_amount"`
	FinalAmount    int64       `json:"final_amount"`
	CouponID       *string     `json:"coupon_id,omitempty"`
}

// Settle prices lines and applies c, which may be nil. The coupon must have
// passed Coupon.Usable already; Settle only checks that it belongs to the
// cart's store.
func Settle(lines []cart.Line, c *coupon.Coupon) (Settlement, error) {
	storeID, err := validateLines(lines)
	if err != nil {
		return Settlement{}, err
	}
	if c != nil && !c.AppliesToStore(storeID) {
		return Settlement{}, ErrCouponStoreMismatch
	}

	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}

	s := Settlement{
		StoreID:     storeID,
		Lines:       lines,
		TotalAmount: total,
	}
	if c != nil {
		s.DiscountAmount = coupon.Evaluate(total, *c)
		id := c.ID
		s.CouponID = &id
	}
	s.FinalAmount = s.TotalAmount - s.DiscountAmount
	return s, nil
}

// validateLines returns the single store the lines belong to.
func validateLines(lines []cart.Line) (string, error) {
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}
	storeID := lines[0].StoreID
	for _, l := range lines {
		if l.Quantity < 1 || l.UnitPrice < 0 {
			return "", ErrInvalidLine
		}
		if l.StoreID != storeID {
			return "", ErrMixedStores
		}
	}
	return storeID, nil
}
