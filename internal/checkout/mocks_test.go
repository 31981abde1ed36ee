package checkout

import (
	"context"
	"sync"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"
	"storefront-be/internal/order"
	"storefront-be/internal/payment"
	"storefront-be/internal/product"
	"storefront-be/internal/store"

	"github.com/stretchr/testify/mock"
)

// --- in-memory stores for the reconciliation state ---

type fakeOrders struct {
	mu      sync.Mutex
	orders  map[string]*order.Order
	created []*order.Order
	err     error

	// stock by product id and used_count by coupon id
	stock      map[string]int
	couponUses map[string]int
}

func newFakeOrders(orders ...*order.Order) *fakeOrders {
	f := &fakeOrders{
		orders:     map[string]*order.Order{},
		stock:      map[string]int{},
		couponUses: map[string]int{},
	}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrders) CreateOrderTx(ctx context.Context, o *order.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	o.ID = "o-new"
	f.orders[o.ID] = o
	f.created = append(f.created, o)
	for _, it := range o.Items {
		f.stock[it.ProductID] -= it.Quantity
	}
	if o.CouponID != nil {
		f.couponUses[*o.CouponID]++
	}
	return nil
}

func (f *fakeOrders) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) List(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return order.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrders) TransitionStatus(ctx context.Context, orderID string, from, to order.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	o, ok := f.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (f *fakeOrders) CancelTx(ctx context.Context, orderID string, from order.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	o, ok := f.orders[orderID]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = order.StatusCancelled
	for _, it := range o.Items {
		f.stock[it.ProductID] += it.Quantity
	}
	if o.CouponID != nil && f.couponUses[*o.CouponID] > 0 {
		f.couponUses[*o.CouponID]--
	}
	return true, nil
}

func (f *fakeOrders) FindPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrders) status(id string) order.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id].Status
}

func (f *fakeOrders) uses(couponID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.couponUses[couponID]
}

func (f *fakeOrders) stockOf(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[productID]
}

type fakePayments struct {
	mu      sync.Mutex
	records map[string]*payment.Record
	inserts int
}

func newFakePayments() *fakePayments {
	return &fakePayments{records: map[string]*payment.Record{}}
}

func (f *fakePayments) SaveRecord(ctx context.Context, r *payment.Record) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[r.OrderID]; ok {
		return false, nil
	}
	f.inserts++
	r.ID = "pay-" + r.OrderID
	cp := *r
	f.records[r.OrderID] = &cp
	return true, nil
}

func (f *fakePayments) GetByOrderID(ctx context.Context, orderID string) (*payment.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[orderID]
	if !ok {
		return nil, payment.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakePayments) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// --- mocks ---

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Confirm(ctx context.Context, paymentKey, orderID string, amount int64) (*payment.Payment, error) {
	args := m.Called(ctx, paymentKey, orderID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockGateway) GetByOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, ownerID string) (*cart.Cart, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, ownerID string, input cart.AddItemInput) (*cart.Cart, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, ownerID, productID string, input cart.UpdateQuantityInput) (*cart.Cart, error) {
	args := m.Called(ctx, ownerID, productID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, ownerID, storeID, productID string) (*cart.Cart, error) {
	args := m.Called(ctx, ownerID, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, ownerID string) error {
	return m.Called(ctx, ownerID).Error(0)
}

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

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) ListAvailable(ctx context.Context, storeID *string) ([]coupon.Coupon, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) GetUsable(ctx context.Context, couponID string) (*coupon.Coupon, error) {
	args := m.Called(ctx, couponID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) ListByStore(ctx context.Context, storeID string) ([]coupon.Coupon, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Create(ctx context.Context, storeID string, input coupon.Input) (*coupon.Coupon, error) {
	args := m.Called(ctx, storeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, storeID, couponID string, input coupon.Input) (*coupon.Coupon, error) {
	args := m.Called(ctx, storeID, couponID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*coupon.Coupon), args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, storeID, couponID string) error {
	return m.Called(ctx, storeID, couponID).Error(0)
}

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id string) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByOwnerID(ctx context.Context, ownerID string) (*store.Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) List(ctx context.Context) ([]store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Store), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID, kind, title, message string) error {
	return m.Called(ctx, userID, kind, title, message).Error(0)
}
