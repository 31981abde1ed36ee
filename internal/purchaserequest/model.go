package purchaserequest

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

func canTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Request asks for a product to be restocked. CurrentQuantity is the
// store's stock when the request was made.
type Request struct {
	ID                   string     `json:"id"`
	StoreID              string     `json:"store_id"`
	ProductID            string     `json:"product_id"`
	ProductName          string     `json:"product_name"`
	RequestedQuantity    int        `json:"requested_quantity"`
	CurrentQuantity      int        `json:"current_quantity"`
	Status               Status     `json:"status"`
	Notes                *string    `json:"notes,omitempty"`
	RequestedAt          time.Time  `json:"requested_at"`
	ProcessedAt          *time.Time `json:"processed_at,omitempty"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
}

type CreateInput struct {
	ProductID            string     `json:"product_id" validate:"required,uuid"`
	RequestedQuantity    int        `json:"requested_quantity" validate:"required,gte=1"`
	Notes                *string    `json:"notes" validate:"omitempty,max=500"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
}

// UpdateInput changes a request. Nil fields are kept.
type UpdateInput struct {
	RequestedQuantity    *int       `json:"requested_quantity" validate:"omitempty,gte=1"`
	Notes                *string    `json:"notes" validate:"omitempty,max=500"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	Status               *Status    `json:"status" validate:"omitempty,oneof=pending approved rejected completed"`
}
