package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

type PurchaseRequestStatus string

const (
	PurchaseRequestStatusPending   PurchaseRequestStatus = "PENDING"
	PurchaseRequestStatusApproved  PurchaseRequestStatus = "APPROVED"
	PurchaseRequestStatusRejected  PurchaseRequestStatus = "REJECTED"
	PurchaseRequestStatusCompleted PurchaseRequestStatus = "COMPLETED"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type Store struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          string  `json:"id"`
	StoreID     string  `json:"storeId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
	Price       int64   `json:"price"`
	Stock       int     `json:"stock"`
}

type CartLine struct {
	ProductID string `json:"productId"`
	StoreID   string `json:"storeId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type Cart struct {
	Lines     []*CartLine `json:"lines"`
	Subtotal  int64       `json:"subtotal"`
	ItemCount int         `json:"itemCount"`
	UpdatedAt *time.Time  `json:"updatedAt"`
}

type Settlement struct {
	StoreID        string      `json:"storeId"`
	Lines          []*CartLine `json:"lines"`
	TotalAmount    int64       `json:"totalAmount"`
	DiscountAmount int64       `json:"discountAmount"`
	FinalAmount    int64       `json:"finalAmount"`
	CouponID       *string     `json:"couponId"`
}

type Coupon struct {
	ID                string          `json:"id"`
	StoreID           *string         `json:"storeId"`
	Name              string          `json:"name"`
	Description       *string         `json:"description"`
	DiscountType      DiscountType    `json:"discountType"`
	DiscountValue     decimal.Decimal `json:"discountValue"`
	MinOrderAmount    *int64          `json:"minOrderAmount"`
	MaxDiscountAmount *int64          `json:"maxDiscountAmount"`
	ValidFrom         time.Time       `json:"validFrom"`
	ValidUntil        time.Time       `json:"validUntil"`
	IsActive          bool            `json:"isActive"`
	UsageLimit        *int            `json:"usageLimit"`
	UsedCount         int             `json:"usedCount"`
}

type OrderItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type Order struct {
	ID             string       `json:"id"`
	CustomerID     string       `json:"customerId"`
	StoreID        string       `json:"storeId"`
	Items          []*OrderItem `json:"items"`
	TotalAmount    int64        `json:"totalAmount"`
	DiscountAmount int64        `json:"discountAmount"`
	FinalAmount    int64        `json:"finalAmount"`
	CouponID       *string      `json:"couponId"`
	Status         OrderStatus  `json:"status"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type PaymentRequest struct {
	OrderID       string `json:"orderId"`
	OrderName     string `json:"orderName"`
	Amount        int64  `json:"amount"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	SuccessURL    string `json:"successUrl"`
	FailURL       string `json:"failUrl"`
}

type CheckoutResult struct {
	Order   *Order          `json:"order"`
	Payment *PaymentRequest `json:"payment"`
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type PurchaseRequest struct {
	ID                   string                `json:"id"`
	ProductID            string                `json:"productId"`
	ProductName          string                `json:"productName"`
	RequestedQuantity    int                   `json:"requestedQuantity"`
	CurrentQuantity      int                   `json:"currentQuantity"`
	Status               PurchaseRequestStatus `json:"status"`
	Notes                *string               `json:"notes"`
	RequestedAt          time.Time             `json:"requestedAt"`
	ProcessedAt          *time.Time            `json:"processedAt"`
	ExpectedDeliveryDate *time.Time            `json:"expectedDeliveryDate"`
}
