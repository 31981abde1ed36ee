package payment

import "time"

type RecordStatus string

const (
	RecordCompleted RecordStatus = "completed"
	RecordFailed    RecordStatus = "failed"
)

// Placeholder values stored on failure records, where no payment exists.
const (
	NoPaymentKey = "N/A"
	NoMethod     = "N/A"
)

// Record is the terminal outcome of a payment attempt. At most one exists
// per order and it is never updated.
type Record struct {
	ID            string       `json:"id"`
	OrderID       string       `json:"order_id"`
	PaymentKey    string       `json:"payment_key"`
	Amount        int64        `json:"amount"`
	Method        string       `json:"method"`
	Status        RecordStatus `json:"status"`
	FailureReason *string      `json:"failure_reason,omitempty"`
	ApprovedAt    *time.Time   `json:"approved_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// GatewayStatus is the payment status reported by the gateway.
type GatewayStatus string

const (
	GatewayReady           GatewayStatus = "READY"
	GatewayInProgress      GatewayStatus = "IN_PROGRESS"
	GatewayWaitingDeposit  GatewayStatus = "WAITING_FOR_DEPOSIT"
	GatewayDone            GatewayStatus = "DONE"
	GatewayCanceled        GatewayStatus = "CANCELED"
	GatewayPartialCanceled GatewayStatus = "PARTIAL_CANCELED"
	GatewayAborted         GatewayStatus = "ABORTED"
	GatewayExpired         GatewayStatus = "EXPIRED"
)

// Payment is the subset of the gateway payment object we use.
type Payment struct {
	PaymentKey  string        `json:"paymentKey"`
	OrderID     string        `json:"orderId"`
	OrderName   string        `json:"orderName"`
	Status      GatewayStatus `json:"status"`
	Method      string        `json:"method"`
	TotalAmount int64         `json:"totalAmount"`
	ApprovedAt  *time.Time    `json:"approvedAt"`
}

// Request is handed to the client SDK to open the hosted payment window.
type Request struct {
	OrderID       string `json:"order_id"`
	OrderName     string `json:"order_name"`
	Amount        int64  `json:"amount"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	SuccessURL    string `json:"success_url"`
	FailURL       string `json:"fail_url"`
}
