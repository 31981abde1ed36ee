package notification

import "time"

// Kinds of notification sent by the storefront.
const (
	KindOrderStatus   = "order_status"
	KindNewOrder      = "new_order"
	KindPaymentFailed = "payment_failed"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type ListParams struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}
