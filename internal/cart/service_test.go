package cart

import (
	"context"
	"testing"
	"time"

	"storefront-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListByStore(ctx context.Context, storeID string) ([]product.Item, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Item), args.Error(1)
}

func (m *MockProductService) Quote(ctx context.Context, storeID, productID string, qty int) (*product.Item, error) {
	args := m.Called(ctx, storeID, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Item), args.Error(1)
}

func (m *MockProductService) UpdateInventory(ctx context.Context, storeID, productID string, in product.InventoryUpdate) (*product.Item, error) {
	args := m.Called(ctx, storeID, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Item), args.Error(1)
}

func newTestService(t *testing.T) (*service, *MockProductService) {
	repo, _ := setupTestRedis(t)
	products := new(MockProductService)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &service{repo: repo, products: products, now: func() time.Time { return now }}, products
}

func milk(price int64) *product.Item {
	return &product.Item{ProductID: "p-1", StoreID: "s-1", Name: "Milk", Price: price, Stock: 10}
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("New line", func(t *testing.T) {
		svc, products := newTestService(t)
		products.On("Quote", ctx, "s-1", "p-1", 2).Return(milk(1500), nil)

		c, err := svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-1", Quantity: 2})
		require.NoError(t, err)
		require.Len(t, c.Lines, 1)
		assert.Equal(t, int64(3000), c.Subtotal())
		assert.False(t, c.UpdatedAt.IsZero())
	})

	t.Run("Merges quantity and reprices", func(t *testing.T) {
		svc, products := newTestService(t)
		products.On("Quote", ctx, "s-1", "p-1", 1).Return(milk(1500), nil).Once()
		products.On("Quote", ctx, "s-1", "p-1", 3).Return(milk(1400), nil).Once()

		_, err := svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-1", Quantity: 1})
		require.NoError(t, err)
		c, err := svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-1", Quantity: 2})
		require.NoError(t, err)

		require.Len(t, c.Lines, 1)
		assert.Equal(t, 3, c.Lines[0].Quantity)
		assert.Equal(t, int64(1400), c.Lines[0].UnitPrice)
		products.AssertExpectations(t)
	})

	t.Run("Stock shortfall leaves cart unchanged", func(t *testing.T) {
		svc, products := newTestService(t)
		products.On("Quote", ctx, "s-1", "p-1", 50).Return(nil, product.ErrInsufficientStock)

		_, err := svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-1", Quantity: 50})
		assert.ErrorIs(t, err, product.ErrInsufficientStock)

		c, err := svc.Get(ctx, "u-1")
		require.NoError(t, err)
		assert.Empty(t, c.Lines)
	})

	t.Run("Zero quantity", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-1"})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	svc, products := newTestService(t)
	products.On("Quote", ctx, "s-1", "p-1", 1).Return(milk(1500), nil)
	products.On("Quote", ctx, "s-1", "p-1", 4).Return(milk(1500), nil)

	_, err := svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	t.Run("Set", func(t *testing.T) {
		c, err := svc.UpdateQuantity(ctx, "u-1", "p-1", UpdateQuantityInput{StoreID: "s-1", Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, 4, c.ItemCount())
	})

	t.Run("Unknown line", func(t *testing.T) {
		_, err := svc.UpdateQuantity(ctx, "u-1", "p-9", UpdateQuantityInput{StoreID: "s-1", Quantity: 2})
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})

	t.Run("Zero removes", func(t *testing.T) {
		c, err := svc.UpdateQuantity(ctx, "u-1", "p-1", UpdateQuantityInput{StoreID: "s-1", Quantity: 0})
		require.NoError(t, err)
		assert.Empty(t, c.Lines)
	})
}

func TestService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()

	svc, products := newTestService(t)
	products.On("Quote", ctx, "s-1", "p-1", 1).Return(milk(1500), nil)
	products.On("Quote", ctx, "s-1", "p-2", 1).
		Return(&product.Item{ProductID: "p-2", StoreID: "s-1", Name: "Bread", Price: 2500, Stock: 5}, nil)

	_, err := svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u-1", AddItemInput{StoreID: "s-1", ProductID: "p-2", Quantity: 1})
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, "u-1", "s-1", "p-1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p-2", c.Lines[0].ProductID)

	_, err = svc.RemoveItem(ctx, "u-1", "s-1", "p-1")
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	require.NoError(t, svc.Clear(ctx, "u-1"))
	c, err = svc.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}
