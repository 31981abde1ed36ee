package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

type Coupon struct {
	ID          string  `json:"id"`
	StoreID     *string `json:"store_id"` // nil means the coupon is valid in every store
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	DiscountType      DiscountType    `json:"discount_type"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	MinOrderAmount    *int64          `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *int64          `json:"max_discount_amount,omitempty"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
	IsActive   bool      `json:"is_active"`
	UsageLimit *int      `json:"usage_limit,omitempty"`
	UsedCount  int       `json:"used_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Usable reports whether the coupon may be offered at checkout at the given
// instant: active, inside its validity window and under its usage limit.
func (c Coupon) Usable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidUntil) {
		return false
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false
	}
	return true
}

func (c Coupon) AppliesToStore(storeID string) bool {
	return c.StoreID == nil || *c.StoreID == storeID
}

// Input is the owner-facing payload for creating or replacing a coupon.
type Input struct {
	Name              string          `json:"name" validate:"required,max=100"`
	Description       *string         `json:"description" validate:"omitempty,max=500"`
	DiscountType      DiscountType    `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	MinOrderAmount    *int64          `json:"min_order_amount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *int64          `json:"max_discount_amount" validate:"omitempty,gte=0"`
	ValidFrom         time.Time       `json:"valid_from" validate:"required"`
	ValidUntil        time.Time       `json:"valid_until" validate:"required"`
	IsActive          bool            `json:"is_active"`
	UsageLimit        *int            `json:"usage_limit" validate:"omitempty,gte=1"`
}
