package checkout

import (
	"context"
	"fmt"
	"net/url"

	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/store"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Input struct {
	CouponID *string `json:"coupon_id" validate:"omitempty,uuid"`
}

// Result is the pending order plus what the client needs to open the
// hosted payment window.
type Result struct {
	Order   *order.Order    `json:"order"`
	Payment payment.Request `json:"payment"`
}

type Service interface {
	// Preview settles the customer's cart without creating anything.
	Preview(ctx context.Context, customerID string, input Input) (*Settlement, error)
	// Checkout settles the customer's cart and creates a pending order.
	// The gateway is not contacted.
	Checkout(ctx context.Context, customerID string, input Input) (*Result, error)
}

type ServiceParams struct {
	Carts      cart.Service
	Products   product.Service
	Coupons    coupon.Service
	Orders     order.Repository
	Stores     store.Repository
	Metrics    *metrics.CheckoutMetrics
	SuccessURL string
	FailURL    string
}

type service struct {
	carts      cart.Service
	products   product.Service
	coupons    coupon.Service
	orders     order.Repository
	stores     store.Repository
	metrics    *metrics.CheckoutMetrics
	successURL string
	failURL    string
}

func NewService(p ServiceParams) Service {
	return &service{
		carts:      p.Carts,
		products:   p.Products,
		coupons:    p.Coupons,
		orders:     p.Orders,
		stores:     p.Stores,
		metrics:    p.Metrics,
		successURL: p.SuccessURL,
		failURL:    p.FailURL,
	}
}

func (s *service) Preview(ctx context.Context, customerID string, input Input) (*Settlement, error) {
	settlement, _, err := s.settle(ctx, customerID, input)
	if err != nil {
		return nil, err
	}
	return &settlement, nil
}

func (s *service) Checkout(ctx context.Context, customerID string, input Input) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("customer_id", customerID),
	)

	settlement, itemCount, err := s.settle(ctx, customerID, input)
	if err != nil {
		return nil, err
	}

	st, err := s.stores.GetByID(ctx, settlement.StoreID)
	if err != nil {
		return nil, err
	}

	o := &order.Order{
		CustomerID:     customerID,
		StoreID:        settlement.StoreID,
		TotalAmount:    settlement.TotalAmount,
		DiscountAmount: settlement.DiscountAmount,
		FinalAmount:    settlement.FinalAmount,
		CouponID:       settlement.CouponID,
		Status:         order.StatusPending,
	}
	for _, l := range settlement.Lines {
		o.Items = append(o.Items, order.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}

	if err := s.orders.CreateOrderTx(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}
	s.metrics.OrderCreated(o.DiscountAmount)

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int64("total_amount", o.TotalAmount),
		zap.Int64("discount_amount", o.DiscountAmount),
		zap.Int64("final_amount", o.FinalAmount),
	)

	return &Result{
		Order: o,
		Payment: payment.Request{
			OrderID:       o.ID,
			OrderName:     fmt.Sprintf("%s order (%d items)", st.Name, itemCount),
			Amount:        o.FinalAmount,
			CustomerName:  utils.GetUserNameFromContext(ctx),
			CustomerEmail: utils.GetUserEmailFromContext(ctx),
			SuccessURL:    withOrderID(s.successURL, o.ID),
			FailURL:       withOrderID(s.failURL, o.ID),
		},
	}, nil
}

// settle reprices the cart from inventory and applies the selected coupon.
// It returns the settlement and the total unit count.
func (s *service) settle(ctx context.Context, customerID string, input Input) (Settlement, int, error) {
	c, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return Settlement{}, 0, err
	}
	if _, err := validateLines(c.Lines); err != nil {
		return Settlement{}, 0, err
	}

	lines := make([]cart.Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		item, err := s.products.Quote(ctx, l.StoreID, l.ProductID, l.Quantity)
		if err != nil {
			return Settlement{}, 0, fmt.Errorf("%s: %w", l.Name, err)
		}
		l.UnitPrice = item.Price
		l.Name = item.Name
		lines = append(lines, l)
	}

	var selected *coupon.Coupon
	if input.CouponID != nil && *input.CouponID != "" {
		selected, err = s.coupons.GetUsable(ctx, *input.CouponID)
		if err != nil {
			return Settlement{}, 0, err
		}
	}

	settlement, err := Settle(lines, selected)
	if err != nil {
		return Settlement{}, 0, err
	}
	return settlement, c.ItemCount(), nil
}

func withOrderID(base, orderID string) string {
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("orderId", orderID)
	u.RawQuery = q.Encode()
	return u.String()
}
