package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/checkout"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	defaultPendingTimeout = 30 * time.Minute
	pendingBatchSize      = 100

	// TimeoutCode is the failure code recorded for abandoned payments.
	TimeoutCode = "PAYMENT_TIMEOUT"
)

type pendingOrderReader interface {
	FindPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]order.Order, error)
}

type paymentLookup interface {
	GetByOrderID(ctx context.Context, orderID string) (*payment.Payment, error)
}

type reconciler interface {
	HandleSuccess(ctx context.Context, orderID, paymentKey string, amount int64) (*checkout.Outcome, error)
	HandleFailure(ctx context.Context, orderID, code, message string) (*checkout.Outcome, error)
}

type PendingOrderJobParams struct {
	Orders     pendingOrderReader
	Gateway    paymentLookup
	Reconciler reconciler
	Timeout    time.Duration
}

// NewPendingOrderJob builds the job that settles orders whose payment
// callback never arrived.
func NewPendingOrderJob(p PendingOrderJobParams) (Job, error) {
	if p.Orders == nil {
		return nil, errors.New("pending orders reader required")
	}
	if p.Gateway == nil {
		return nil, errors.New("payment gateway required")
	}
	if p.Reconciler == nil {
		return nil, errors.New("reconciler required")
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultPendingTimeout
	}
	return &pendingOrderJob{
		orders:     p.Orders,
		gateway:    p.Gateway,
		reconciler: p.Reconciler,
		timeout:    timeout,
		now:        time.Now,
	}, nil
}

type pendingOrderJob struct {
	orders     pendingOrderReader
	gateway    paymentLookup
	reconciler reconciler
	timeout    time.Duration
	now        func() time.Time
}

func (j *pendingOrderJob) Name() string { return "pending-orders" }

func (j *pendingOrderJob) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	cutoff := j.now().UTC().Add(-j.timeout)
	orders, err := j.orders.FindPendingBefore(ctx, cutoff, pendingBatchSize)
	if err != nil {
		return fmt.Errorf("query pending orders: %w", err)
	}

	var errs error
	confirmed, cancelled, waiting := 0, 0, 0
	for _, o := range orders {
		outcome, err := j.settle(ctx, o)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", o.ID, err))
			if errors.Is(err, payment.ErrGatewayDown) {
				break
			}
			continue
		}
		switch outcome {
		case order.StatusConfirmed:
			confirmed++
		case order.StatusCancelled:
			cancelled++
		default:
			waiting++
		}
	}

	log.Info("pending order sweep complete",
		zap.Time("cutoff", cutoff),
		zap.Int("scanned", len(orders)),
		zap.Int("confirmed", confirmed),
		zap.Int("cancelled", cancelled),
		zap.Int("waiting", waiting),
	)
	return errs
}

// settle resolves one stale order against the gateway and returns the
// status it ended in.
func (j *pendingOrderJob) settle(ctx context.Context, o order.Order) (order.Status, error) {
	p, err := j.gateway.GetByOrderID(ctx, o.ID)
	if err != nil && !errors.Is(err, payment.ErrPaymentNotFound) {
		return "", err
	}

	if p != nil {
		switch p.Status {
		case payment.GatewayDone, payment.GatewayInProgress:
			if _, err := j.reconciler.HandleSuccess(ctx, o.ID, p.PaymentKey, p.TotalAmount); err != nil {
				return "", err
			}
			return order.StatusConfirmed, nil
		case payment.GatewayWaitingDeposit:
			return order.StatusPending, nil
		}
	}

	msg := fmt.Sprintf("no completed payment within %s", j.timeout)
	if p != nil {
		msg = fmt.Sprintf("gateway reported %s after %s", p.Status, j.timeout)
	}
	if _, err := j.reconciler.HandleFailure(ctx, o.ID, TimeoutCode, msg); err != nil {
		return "", err
	}
	return order.StatusCancelled, nil
}
