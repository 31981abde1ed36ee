package checkout

import (
	"context"
	"errors"
	"testing"

	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/store"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceDeps struct {
	carts    *MockCartService
	products *MockProductService
	coupons  *MockCouponService
	orders   *fakeOrders
	stores   *MockStoreRepository
}

func newTestService() (Service, *serviceDeps) {
	d := &serviceDeps{
		carts:    new(MockCartService),
		products: new(MockProductService),
		coupons:  new(MockCouponService),
		orders:   newFakeOrders(),
		stores:   new(MockStoreRepository),
	}
	svc := NewService(ServiceParams{
		Carts:      d.carts,
		Products:   d.products,
		Coupons:    d.coupons,
		Orders:     d.orders,
		Stores:     d.stores,
		SuccessURL: "https://shop.test/customer/order-success",
		FailURL:    "https://shop.test/customer/order-fail",
	})
	return svc, d
}

func customerCtx() context.Context {
	return utils.SetUserContext(context.Background(), "cust-1", "kim@example.com", "customer", "Kim")
}

func twoLineCart() *cart.Cart {
	return &cart.Cart{
		OwnerID: "cust-1",
		Lines: []cart.Line{
			{ProductID: "p-1", StoreID: "s-1", Name: "Milk", UnitPrice: 1000, Quantity: 2},
			{ProductID: "p-2", StoreID: "s-1", Name: "Bread", UnitPrice: 3000, Quantity: 3},
		},
	}
}

func TestService_Checkout(t *testing.T) {
	ctx := customerCtx()

	t.Run("Creates pending order from repriced cart", func(t *testing.T) {
		svc, d := newTestService()
		d.carts.On("Get", ctx, "cust-1").Return(twoLineCart(), nil)
		d.products.On("Quote", ctx, "s-1", "p-1", 2).Return(&product.Item{ProductID: "p-1", StoreID: "s-1", Name: "Milk 1L", Price: 2000, Stock: 10}, nil)
		d.products.On("Quote", ctx, "s-1", "p-2", 3).Return(&product.Item{ProductID: "p-2", StoreID: "s-1", Name: "Bread", Price: 2000, Stock: 10}, nil)
		d.coupons.On("GetUsable", ctx, "c-1").Return(&coupon.Coupon{
			ID:                "c-1",
			DiscountType:      coupon.DiscountPercentage,
			DiscountValue:     decimal.NewFromInt(10),
			MinOrderAmount:    i64(5000),
			MaxDiscountAmount: i64(800),
		}, nil)
		d.stores.On("GetByID", ctx, "s-1").Return(&store.Store{ID: "s-1", Name: "Corner Store"}, nil)

		couponID := "c-1"
		res, err := svc.Checkout(ctx, "cust-1", Input{CouponID: &couponID})
		require.NoError(t, err)

		o := res.Order
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, int64(10000), o.TotalAmount)
		assert.Equal(t, int64(800), o.DiscountAmount)
		assert.Equal(t, int64(9200), o.FinalAmount)
		require.NotNil(t, o.CouponID)
		assert.Equal(t, "c-1", *o.CouponID)
		require.Len(t, o.Items, 2)
		assert.Equal(t, "Milk 1L", o.Items[0].Name)
		assert.Equal(t, int64(4000), o.Items[0].Subtotal)

		p := res.Payment
		assert.Equal(t, o.ID, p.OrderID)
		assert.Equal(t, int64(9200), p.Amount)
		assert.Equal(t, "Corner Store order (5 items)", p.OrderName)
		assert.Equal(t, "Kim", p.CustomerName)
		assert.Equal(t, "kim@example.com", p.CustomerEmail)
		assert.Equal(t, "https://shop.test/customer/order-success?orderId=o-new", p.SuccessURL)
		assert.Equal(t, "https://shop.test/customer/order-fail?orderId=o-new", p.FailURL)
		assert.Len(t, d.orders.created, 1)
	})

	t.Run("Empty cart", func(t *testing.T) {
		svc, d := newTestService()
		d.carts.On("Get", ctx, "cust-1").Return(&cart.Cart{OwnerID: "cust-1"}, nil)

		_, err := svc.Checkout(ctx, "cust-1", Input{})
		assert.ErrorIs(t, err, ErrEmptyCart)
		d.products.AssertNumberOfCalls(t, "Quote", 0)
		assert.Empty(t, d.orders.created)
	})

	t.Run("Mixed stores rejected before repricing", func(t *testing.T) {
		svc, d := newTestService()
		c := twoLineCart()
		c.Lines[1].StoreID = "s-2"
		d.carts.On("Get", ctx, "cust-1").Return(c, nil)

		_, err := svc.Checkout(ctx, "cust-1", Input{})
		assert.ErrorIs(t, err, ErrMixedStores)
		d.products.AssertNumberOfCalls(t, "Quote", 0)
	})

	t.Run("Stock shortfall", func(t *testing.T) {
		svc, d := newTestService()
		d.carts.On("Get", ctx, "cust-1").Return(twoLineCart(), nil)
		d.products.On("Quote", ctx, "s-1", "p-1", 2).Return(nil, product.ErrInsufficientStock)

		_, err := svc.Checkout(ctx, "cust-1", Input{})
		assert.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.ErrorContains(t, err, "Milk")
		assert.Empty(t, d.orders.created)
	})

	t.Run("Unusable coupon", func(t *testing.T) {
		svc, d := newTestService()
		d.carts.On("Get", ctx, "cust-1").Return(twoLineCart(), nil)
		d.products.On("Quote", ctx, "s-1", "p-1", 2).Return(&product.Item{Name: "Milk", Price: 1000}, nil)
		d.products.On("Quote", ctx, "s-1", "p-2", 3).Return(&product.Item{Name: "Bread", Price: 3000}, nil)
		d.coupons.On("GetUsable", ctx, "c-old").Return(nil, coupon.ErrCouponNotUsable)

		couponID := "c-old"
		_, err := svc.Checkout(ctx, "cust-1", Input{CouponID: &couponID})
		assert.ErrorIs(t, err, coupon.ErrCouponNotUsable)
		assert.Empty(t, d.orders.created)
	})

	t.Run("Create failure surfaces", func(t *testing.T) {
		svc, d := newTestService()
		d.orders.err = order.ErrCouponExhausted
		d.carts.On("Get", ctx, "cust-1").Return(twoLineCart(), nil)
		d.products.On("Quote", ctx, "s-1", "p-1", 2).Return(&product.Item{Name: "Milk", Price: 1000}, nil)
		d.products.On("Quote", ctx, "s-1", "p-2", 3).Return(&product.Item{Name: "Bread", Price: 3000}, nil)
		d.stores.On("GetByID", ctx, "s-1").Return(&store.Store{ID: "s-1", Name: "Corner"}, nil)

		_, err := svc.Checkout(ctx, "cust-1", Input{})
		assert.ErrorIs(t, err, order.ErrCouponExhausted)
	})

	t.Run("Cart load error", func(t *testing.T) {
		svc, d := newTestService()
		d.carts.On("Get", ctx, "cust-1").Return(nil, errors.New("redis down"))

		_, err := svc.Checkout(ctx, "cust-1", Input{})
		assert.ErrorContains(t, err, "redis down")
	})
}

func TestService_Preview(t *testing.T) {
	ctx := customerCtx()
	svc, d := newTestService()
	d.carts.On("Get", ctx, "cust-1").Return(twoLineCart(), nil)
	d.products.On("Quote", ctx, "s-1", "p-1", 2).Return(&product.Item{Name: "Milk", Price: 1000}, nil)
	d.products.On("Quote", ctx, "s-1", "p-2", 3).Return(&product.Item{Name: "Bread", Price: 3000}, nil)

	s, err := svc.Preview(ctx, "cust-1", Input{})
	require.NoError(t, err)
	assert.Equal(t, int64(11000), s.TotalAmount)
	assert.Equal(t, int64(11000), s.FinalAmount)
	assert.Empty(t, d.orders.created)
}

func TestWithOrderID(t *testing.T) {
	assert.Equal(t, "", withOrderID("", "o-1"))
	assert.Equal(t, "https://a.test/ok?from=cart&orderId=o-1", withOrderID("https://a.test/ok?from=cart", "o-1"))
}
