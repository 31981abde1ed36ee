package httpapi

import (
	"context"

	"storefront-be/internal/checkout"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"

	"github.com/stretchr/testify/mock"
)

type MockReconciler struct{ mock.Mock }

func (m *MockReconciler) HandleSuccess(ctx context.Context, orderID, paymentKey string, amount int64) (*checkout.Outcome, error) {
	args := m.Called(ctx, orderID, paymentKey, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Outcome), args.Error(1)
}

func (m *MockReconciler) HandleFailure(ctx context.Context, orderID, code, message string) (*checkout.Outcome, error) {
	args := m.Called(ctx, orderID, code, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Outcome), args.Error(1)
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

type MockNotificationService struct {
	mock.Mock
	hub *notification.Hub
}

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

// Subscribe is served by a real hub so stream tests can publish.
func (m *MockNotificationService) Subscribe(userID string) (<-chan notification.Notification, func()) {
	return m.hub.Subscribe(userID)
}
