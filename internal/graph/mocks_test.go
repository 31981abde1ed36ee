package graph

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/coupon"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/purchaserequest"
	"storefront-be/internal/store"
	"storefront-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, input user.RegisterInput) (string, *user.User, error) {
	args := m.Called(ctx, input)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockStoreRepository struct{ mock.Mock }

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

type MockProductService struct{ mock.Mock }

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

type MockCartService struct{ mock.Mock }

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

type MockCouponService struct{ mock.Mock }

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

type MockCheckoutService struct{ mock.Mock }

func (m *MockCheckoutService) Preview(ctx context.Context, customerID string, input checkout.Input) (*checkout.Settlement, error) {
	args := m.Called(ctx, customerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Settlement), args.Error(1)
}

func (m *MockCheckoutService) Checkout(ctx context.Context, customerID string, input checkout.Input) (*checkout.Result, error) {
	args := m.Called(ctx, customerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Result), args.Error(1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) GetDetail(ctx context.Context, orderID string) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListForCustomer(ctx context.Context, customerID string, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) ListForOwner(ctx context.Context, ownerID string, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) ListAll(ctx context.Context, filter order.ListFilter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, ownerID, orderID string, to order.Status) (*order.Order, error) {
	args := m.Called(ctx, ownerID, orderID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) Notify(ctx context.Context, userID, kind, title, message string) error {
	return m.Called(ctx, userID, kind, title, message).Error(0)
}

func (m *MockNotificationService) List(ctx context.Context, userID string, params notification.ListParams) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotificationService) Subscribe(userID string) (<-chan notification.Notification, func()) {
	ch := make(chan notification.Notification)
	return ch, func() {}
}

type MockPurchaseRequestService struct{ mock.Mock }

func (m *MockPurchaseRequestService) ListByStore(ctx context.Context, storeID string) ([]purchaserequest.Request, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]purchaserequest.Request), args.Error(1)
}

func (m *MockPurchaseRequestService) Create(ctx context.Context, storeID string, in purchaserequest.CreateInput) (*purchaserequest.Request, error) {
	args := m.Called(ctx, storeID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaserequest.Request), args.Error(1)
}

func (m *MockPurchaseRequestService) Update(ctx context.Context, storeID, requestID string, in purchaserequest.UpdateInput) (*purchaserequest.Request, error) {
	args := m.Called(ctx, storeID, requestID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaserequest.Request), args.Error(1)
}

func (m *MockPurchaseRequestService) Delete(ctx context.Context, storeID, requestID string) error {
	return m.Called(ctx, storeID, requestID).Error(0)
}
