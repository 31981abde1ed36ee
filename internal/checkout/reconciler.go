package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/store"

	"go.uber.org/zap"
)

const (
	kindSuccess = "success"
	kindFailure = "failure"
)

// Outcome describes what a reconciliation call did. Duplicate is set when
// an earlier call had already recorded the payment outcome.
type Outcome struct {
	Order     *order.Order    `json:"order"`
	Record    *payment.Record `json:"payment"`
	Duplicate bool            `json:"duplicate"`
}

type ReconcilerParams struct {
	Orders   order.Repository
	Payments payment.Repository
	Gateway  payment.Gateway
	Carts    cart.Service
	Stores   store.Repository
	Notifier order.Notifier
	Metrics  *metrics.CheckoutMetrics
}

// Reconciler applies gateway callbacks to orders. Every step is keyed by
// order id, so replaying a callback converges on the same state.
type Reconciler struct {
	orders   order.Repository
	payments payment.Repository
	gateway  payment.Gateway
	carts    cart.Service
	stores   store.Repository
	notifier order.Notifier
	metrics  *metrics.CheckoutMetrics
	now      func() time.Time
}

func NewReconciler(p ReconcilerParams) *Reconciler {
	return &Reconciler{
		orders:   p.Orders,
		payments: p.Payments,
		gateway:  p.Gateway,
		carts:    p.Carts,
		stores:   p.Stores,
		notifier: p.Notifier,
		metrics:  p.Metrics,
		now:      time.Now,
	}
}

// HandleSuccess confirms the payment with the gateway, records it and moves
// the order from pending to confirmed.
func (r *Reconciler) HandleSuccess(ctx context.Context, orderID, paymentKey string, amount int64) (*Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "reconciler"),
		zap.String("method", "HandleSuccess"),
		zap.String("order_id", orderID),
	)

	if orderID == "" || paymentKey == "" || amount < 0 {
		return nil, ErrInvalidCallback
	}

	o, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		r.metrics.Reconciled(kindSuccess, metrics.OutcomeError)
		return nil, err
	}
	if amount != o.FinalAmount {
		log.Warn("callback amount does not match order",
			zap.Int64("amount", amount),
			zap.Int64("final_amount", o.FinalAmount),
		)
		r.metrics.Reconciled(kindSuccess, metrics.OutcomeAmountMismatch)
		return nil, ErrAmountMismatch
	}

	rec, err := r.existingRecord(ctx, orderID)
	if err != nil {
		r.metrics.Reconciled(kindSuccess, metrics.OutcomeError)
		return nil, err
	}

	duplicate := rec != nil
	if rec != nil && rec.Status == payment.RecordFailed {
		log.Info("payment already recorded as failed, ignoring success callback")
		r.metrics.Reconciled(kindSuccess, metrics.OutcomeDuplicate)
		return &Outcome{Order: o, Record: rec, Duplicate: true}, nil
	}

	if rec == nil {
		if o.Status != order.StatusPending {
			log.Warn("success callback for order not awaiting payment", zap.String("status", string(o.Status)))
			r.metrics.Reconciled(kindSuccess, metrics.OutcomeError)
			return nil, ErrOrderNotPending
		}

		rec, duplicate, err = r.confirm(ctx, o, paymentKey, amount)
		if err != nil {
			log.Error("failed to confirm payment", zap.Error(err))
			r.metrics.Reconciled(kindSuccess, metrics.OutcomeError)
			return nil, err
		}
		if rec.Status == payment.RecordFailed {
			r.metrics.Reconciled(kindSuccess, metrics.OutcomeDuplicate)
			return &Outcome{Order: o, Record: rec, Duplicate: true}, nil
		}
	}

	changed, err := r.orders.TransitionStatus(ctx, orderID, order.StatusPending, order.StatusConfirmed)
	if err != nil {
		log.Error("failed to confirm order", zap.Error(err))
		r.metrics.Reconciled(kindSuccess, metrics.OutcomeError)
		return nil, err
	}
	if !changed {
		r.metrics.Reconciled(kindSuccess, metrics.OutcomeDuplicate)
		return &Outcome{Order: o, Record: rec, Duplicate: true}, nil
	}
	o.Status = order.StatusConfirmed

	if err := r.carts.Clear(ctx, o.CustomerID); err != nil {
		log.Warn("failed to clear cart after payment", zap.Error(err))
	}
	r.notifyOwner(ctx, log, o)

	log.Info("payment reconciled", zap.Int64("amount", amount), zap.Bool("retry", duplicate))
	r.metrics.Reconciled(kindSuccess, metrics.OutcomeConfirmed)
	return &Outcome{Order: o, Record: rec, Duplicate: duplicate}, nil
}

// HandleFailure records a failed payment and cancels the pending order,
// returning its stock and coupon use.
func (r *Reconciler) HandleFailure(ctx context.Context, orderID, code, message string) (*Outcome, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "reconciler"),
		zap.String("method", "HandleFailure"),
		zap.String("order_id", orderID),
		zap.String("code", code),
	)

	if orderID == "" {
		return nil, ErrInvalidCallback
	}

	o, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		r.metrics.Reconciled(kindFailure, metrics.OutcomeError)
		return nil, err
	}

	rec, err := r.existingRecord(ctx, orderID)
	if err != nil {
		r.metrics.Reconciled(kindFailure, metrics.OutcomeError)
		return nil, err
	}
	if rec != nil && rec.Status == payment.RecordCompleted {
		log.Info("payment already completed, ignoring failure callback")
		r.metrics.Reconciled(kindFailure, metrics.OutcomeDuplicate)
		return &Outcome{Order: o, Record: rec, Duplicate: true}, nil
	}

	duplicate := rec != nil
	if rec == nil {
		reason := fmt.Sprintf("%s: %s", code, message)
		rec = &payment.Record{
			OrderID:       orderID,
			PaymentKey:    payment.NoPaymentKey,
			Amount:        0,
			Method:        payment.NoMethod,
			Status:        payment.RecordFailed,
			FailureReason: &reason,
		}
		inserted, err := r.payments.SaveRecord(ctx, rec)
		if err != nil {
			log.Error("failed to save payment failure", zap.Error(err))
			r.metrics.Reconciled(kindFailure, metrics.OutcomeError)
			return nil, err
		}
		if !inserted {
			duplicate = true
			if rec, err = r.payments.GetByOrderID(ctx, orderID); err != nil {
				r.metrics.Reconciled(kindFailure, metrics.OutcomeError)
				return nil, err
			}
			if rec.Status == payment.RecordCompleted {
				r.metrics.Reconciled(kindFailure, metrics.OutcomeDuplicate)
				return &Outcome{Order: o, Record: rec, Duplicate: true}, nil
			}
		}
	}

	changed, err := r.orders.CancelTx(ctx, orderID, order.StatusPending)
	if err != nil {
		log.Error("failed to cancel order", zap.Error(err))
		r.metrics.Reconciled(kindFailure, metrics.OutcomeError)
		return nil, err
	}
	if !changed {
		r.metrics.Reconciled(kindFailure, metrics.OutcomeDuplicate)
		return &Outcome{Order: o, Record: rec, Duplicate: true}, nil
	}
	o.Status = order.StatusCancelled

	if err := r.notifier.Notify(ctx, o.CustomerID, "payment_failed",
		"Payment failed",
		fmt.Sprintf("Payment for your order was not completed (%s). The order has been cancelled.", code),
	); err != nil {
		log.Warn("failed to notify customer", zap.Error(err))
	}

	log.Info("payment failure reconciled")
	r.metrics.Reconciled(kindFailure, metrics.OutcomeCancelled)
	return &Outcome{Order: o, Record: rec, Duplicate: duplicate}, nil
}

func (r *Reconciler) existingRecord(ctx context.Context, orderID string) (*payment.Record, error) {
	rec, err := r.payments.GetByOrderID(ctx, orderID)
	if errors.Is(err, payment.ErrRecordNotFound) {
		return nil, nil
	}
	return rec, err
}

// confirm asks the gateway to approve the payment and stores the completed
// record. If another call stored a record first, that record is returned
// with duplicate set.
func (r *Reconciler) confirm(ctx context.Context, o *order.Order, paymentKey string, amount int64) (*payment.Record, bool, error) {
	timer := metrics.StartTimer()
	p, err := r.gateway.Confirm(ctx, paymentKey, o.ID, amount)
	r.metrics.ObserveGateway("confirm", timer.Duration())
	if err != nil {
		return nil, false, err
	}

	approvedAt := r.now()
	if p.ApprovedAt != nil {
		approvedAt = *p.ApprovedAt
	}
	key := p.PaymentKey
	if key == "" {
		key = paymentKey
	}

	rec := &payment.Record{
		OrderID:    o.ID,
		PaymentKey: key,
		Amount:     amount,
		Method:     p.Method,
		Status:     payment.RecordCompleted,
		ApprovedAt: &approvedAt,
	}
	inserted, err := r.payments.SaveRecord(ctx, rec)
	if err != nil {
		return nil, false, err
	}
	if inserted {
		return rec, false, nil
	}

	existing, err := r.payments.GetByOrderID(ctx, o.ID)
	if err != nil {
		return nil, false, err
	}
	return existing, true, nil
}

func (r *Reconciler) notifyOwner(ctx context.Context, log *zap.Logger, o *order.Order) {
	st, err := r.stores.GetByID(ctx, o.StoreID)
	if err != nil {
		log.Warn("failed to load store for owner notification", zap.Error(err))
		return
	}
	if err := r.notifier.Notify(ctx, st.OwnerID, "new_order",
		"New order",
		fmt.Sprintf("A new order of %d won has been paid.", o.FinalAmount),
	); err != nil {
		log.Warn("failed to notify store owner", zap.Error(err))
	}
}
