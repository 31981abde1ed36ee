package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Reconciliation outcomes.
const (
	OutcomeConfirmed      = "confirmed"
	OutcomeDuplicate      = "duplicate"
	OutcomeCancelled      = "cancelled"
	OutcomeAmountMismatch = "amount_mismatch"
	OutcomeError          = "error"
)

// CheckoutMetrics counts orders created and payment callbacks handled.
type CheckoutMetrics struct {
	ordersCreated   prometheus.Counter
	discountTotal   prometheus.Counter
	reconciliations *prometheus.CounterVec
	gatewayLatency  *prometheus.HistogramVec
}

func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_created_total",
		Help: "Orders created in pending state by checkout.",
	})
	discountTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_discount_amount_total",
		Help: "Sum of coupon discounts granted at checkout.",
	})
	reconciliations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_reconciliations_total",
		Help: "Payment callbacks handled, by kind and outcome.",
	}, []string{"kind", "outcome"})
	gatewayLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_gateway_request_seconds",
		Help:    "Latency of payment gateway calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	reg.MustRegister(ordersCreated, discountTotal, reconciliations, gatewayLatency)
	return &CheckoutMetrics{
		ordersCreated:   ordersCreated,
		discountTotal:   discountTotal,
		reconciliations: reconciliations,
		gatewayLatency:  gatewayLatency,
	}
}

// OrderCreated counts one order and adds its discount to the running total.
func (m *CheckoutMetrics) OrderCreated(discount int64) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
	if discount > 0 {
		m.discountTotal.Add(float64(discount))
	}
}

// Reconciled records a success or failure callback outcome.
func (m *CheckoutMetrics) Reconciled(kind, outcome string) {
	if m == nil || m.reconciliations == nil {
		return
	}
	m.reconciliations.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

func (m *CheckoutMetrics) ObserveGateway(op string, d time.Duration) {
	if m == nil || m.gatewayLatency == nil {
		return
	}
	m.gatewayLatency.WithLabelValues(normalizeLabel(op)).Observe(d.Seconds())
}

// Timer measures elapsed wall time from StartTimer.
type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
