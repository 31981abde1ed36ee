package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=100"`
	Role     *Role  `json:"role" validate:"omitempty,oneof=CUSTOMER OWNER"`
}

type AddCartItemInput struct {
	StoreID   string `json:"storeId" validate:"required,uuid"`
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=99"`
}

// UpdateCartItemInput sets a line's quantity; zero removes the line.
type UpdateCartItemInput struct {
	StoreID   string `json:"storeId" validate:"required,uuid"`
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=99"`
}

type CheckoutInput struct {
	CouponID *string `json:"couponId" validate:"omitempty,uuid"`
}

// OrderFilter dates accept RFC3339 or YYYY-MM-DD. StoreID is only honoured
// for admins.
type OrderFilter struct {
	Status  *OrderStatus `json:"status"`
	From    *string      `json:"from"`
	To      *string      `json:"to"`
	StoreID *string      `json:"storeId" validate:"omitempty,uuid"`
	Limit   *int         `json:"limit" validate:"omitempty,gte=0"`
	Offset  *int         `json:"offset" validate:"omitempty,gte=0"`
}

type CouponInput struct {
	Name              string          `json:"name" validate:"required,max=100"`
	Description       *string         `json:"description" validate:"omitempty,max=500"`
	DiscountType      DiscountType    `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue     decimal.Decimal `json:"discountValue"`
	MinOrderAmount    *int64          `json:"minOrderAmount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *int64          `json:"maxDiscountAmount" validate:"omitempty,gte=0"`
	ValidFrom         time.Time       `json:"validFrom" validate:"required"`
	ValidUntil        time.Time       `json:"validUntil" validate:"required"`
	IsActive          bool            `json:"isActive"`
	UsageLimit        *int            `json:"usageLimit" validate:"omitempty,gte=1"`
}

type InventoryInput struct {
	Price *int64 `json:"price" validate:"omitempty,gte=0"`
	Stock *int   `json:"stock" validate:"omitempty,gte=0"`
}

type CreatePurchaseRequestInput struct {
	ProductID            string     `json:"productId" validate:"required,uuid"`
	RequestedQuantity    int        `json:"requestedQuantity" validate:"gte=1"`
	Notes                *string    `json:"notes" validate:"omitempty,max=500"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate"`
}

type UpdatePurchaseRequestInput struct {
	RequestedQuantity    *int                   `json:"requestedQuantity" validate:"omitempty,gte=1"`
	Notes                *string                `json:"notes" validate:"omitempty,max=500"`
	ExpectedDeliveryDate *time.Time             `json:"expectedDeliveryDate"`
	Status               *PurchaseRequestStatus `json:"status"`
}
