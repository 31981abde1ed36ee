package payment

import (
	"context"
	"errors"
	"time"

	"storefront-be/internal/logger"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type breakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[*Payment]
}

// WithBreaker trips after five consecutive transport or 5xx failures and
// probes again after 30s. Business rejections (4xx) never trip it.
func WithBreaker(next Gateway) Gateway {
	settings := gobreaker.Settings{
		Name:        "toss-payments",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, ErrPaymentNotFound) || errors.Is(err, ErrNotApproved) || errors.Is(err, context.Canceled) {
				return true
			}
			var gwErr *GatewayError
			return errors.As(err, &gwErr) && !gwErr.Temporary()
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.L().Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &breakerGateway{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[*Payment](settings),
	}
}

func (b *breakerGateway) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*Payment, error) {
	return b.execute(func() (*Payment, error) {
		return b.next.Confirm(ctx, paymentKey, orderID, amount)
	})
}

func (b *breakerGateway) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	return b.execute(func() (*Payment, error) {
		return b.next.GetByOrderID(ctx, orderID)
	})
}

func (b *breakerGateway) execute(fn func() (*Payment, error)) (*Payment, error) {
	p, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(ErrGatewayDown, err)
	}
	return p, err
}
