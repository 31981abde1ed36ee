package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/payment"
	"storefront-be/internal/store"
	"storefront-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, o *Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *MockRepository) TransitionStatus(ctx context.Context, orderID string, from, to Status) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CancelTx(ctx context.Context, orderID string, from Status) (bool, error) {
	args := m.Called(ctx, orderID, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) FindPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]Order, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
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
	return args.Get(0).([]store.Store), args.Error(1)
}

type MockPaymentRecords struct {
	mock.Mock
}

func (m *MockPaymentRecords) GetByOrderID(ctx context.Context, orderID string) (*payment.Record, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Record), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID, kind, title, message string) error {
	return m.Called(ctx, userID, kind, title, message).Error(0)
}

func asUser(id, role string) context.Context {
	return utils.SetUserContext(context.Background(), id, id+"@example.com", role, "")
}

func TestService_GetDetail(t *testing.T) {
	o := &Order{ID: "o-1", CustomerID: "u-1", StoreID: "s-1", Status: StatusPending}

	tests := []struct {
		name    string
		ctx     context.Context
		setup   func(*MockStoreRepository)
		wantErr error
	}{
		{name: "customer owns order", ctx: asUser("u-1", "customer")},
		{name: "other customer", ctx: asUser("u-2", "customer"), wantErr: ErrForbidden},
		{name: "admin", ctx: asUser("a-1", "admin")},
		{
			name: "owner of store",
			ctx:  asUser("o-1", "owner"),
			setup: func(m *MockStoreRepository) {
				m.On("GetByOwnerID", mock.Anything, "o-1").Return(&store.Store{ID: "s-1"}, nil)
			},
		},
		{
			name: "owner of other store",
			ctx:  asUser("o-2", "owner"),
			setup: func(m *MockStoreRepository) {
				m.On("GetByOwnerID", mock.Anything, "o-2").Return(&store.Store{ID: "s-2"}, nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "owner without store",
			ctx:  asUser("o-3", "owner"),
			setup: func(m *MockStoreRepository) {
				m.On("GetByOwnerID", mock.Anything, "o-3").Return(nil, store.ErrStoreNotFound)
			},
			wantErr: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			stores := new(MockStoreRepository)
			repo.On("GetByID", mock.Anything, "o-1").Return(o, nil)
			if tt.setup != nil {
				tt.setup(stores)
			}

			got, err := NewService(repo, stores, new(MockPaymentRecords), new(MockNotifier)).GetDetail(tt.ctx, "o-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "o-1", got.ID)
		})
	}
}

func TestService_ListForOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("Scoped to owner store", func(t *testing.T) {
		repo := new(MockRepository)
		stores := new(MockStoreRepository)
		status := StatusPending

		stores.On("GetByOwnerID", ctx, "owner-1").Return(&store.Store{ID: "s-1"}, nil)
		repo.On("List", ctx, mock.MatchedBy(func(f ListFilter) bool {
			return f.StoreID != nil && *f.StoreID == "s-1" && f.CustomerID == nil && *f.Status == StatusPending
		})).Return([]Order{{ID: "o-1"}}, nil)

		orders, err := NewService(repo, stores, new(MockPaymentRecords), new(MockNotifier)).
			ListForOwner(ctx, "owner-1", ListFilter{Status: &status})
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("Invalid status filter", func(t *testing.T) {
		bad := Status("lost")
		_, err := NewService(new(MockRepository), new(MockStoreRepository), new(MockPaymentRecords), new(MockNotifier)).
			ListForOwner(ctx, "owner-1", ListFilter{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestService_ListForCustomer(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	other := "s-9"

	repo.On("List", ctx, mock.MatchedBy(func(f ListFilter) bool {
		return *f.CustomerID == "u-1" && f.StoreID == nil
	})).Return([]Order{}, nil)

	_, err := NewService(repo, new(MockStoreRepository), new(MockPaymentRecords), new(MockNotifier)).
		ListForCustomer(ctx, "u-1", ListFilter{StoreID: &other})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(current Status) (*MockRepository, *MockStoreRepository, *MockNotifier) {
		repo := new(MockRepository)
		stores := new(MockStoreRepository)
		notifier := new(MockNotifier)
		stores.On("GetByOwnerID", ctx, "owner-1").Return(&store.Store{ID: "s-1", Name: "Corner Mart"}, nil)
		repo.On("GetByID", ctx, "o-1").
			Return(&Order{ID: "o-1", CustomerID: "u-1", StoreID: "s-1", Status: current}, nil)
		return repo, stores, notifier
	}

	t.Run("Valid transition notifies customer", func(t *testing.T) {
		repo, stores, notifier := setup(StatusConfirmed)
		repo.On("UpdateStatus", ctx, "o-1", StatusPreparing).Return(nil)
		notifier.On("Notify", ctx, "u-1", "order_status", mock.Anything, mock.MatchedBy(func(msg string) bool {
			return msg == "Your order at Corner Mart is now preparing."
		})).Return(nil)

		o, err := NewService(repo, stores, new(MockPaymentRecords), notifier).UpdateStatus(ctx, "owner-1", "o-1", StatusPreparing)
		require.NoError(t, err)
		assert.Equal(t, StatusPreparing, o.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("Notification failure does not fail the update", func(t *testing.T) {
		repo, stores, notifier := setup(StatusReady)
		repo.On("UpdateStatus", ctx, "o-1", StatusCompleted).Return(nil)
		notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("hub closed"))

		_, err := NewService(repo, stores, new(MockPaymentRecords), notifier).UpdateStatus(ctx, "owner-1", "o-1", StatusCompleted)
		assert.NoError(t, err)
	})

	t.Run("Illegal transition", func(t *testing.T) {
		repo, stores, notifier := setup(StatusPreparing)

		_, err := NewService(repo, stores, new(MockPaymentRecords), notifier).UpdateStatus(ctx, "owner-1", "o-1", StatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Order of another store", func(t *testing.T) {
		repo := new(MockRepository)
		stores := new(MockStoreRepository)
		stores.On("GetByOwnerID", ctx, "owner-2").Return(&store.Store{ID: "s-2"}, nil)
		repo.On("GetByID", ctx, "o-1").Return(&Order{ID: "o-1", StoreID: "s-1", Status: StatusConfirmed}, nil)

		_, err := NewService(repo, stores, new(MockPaymentRecords), new(MockNotifier)).UpdateStatus(ctx, "owner-2", "o-1", StatusPreparing)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Cancel restores stock through CancelTx", func(t *testing.T) {
		repo, stores, notifier := setup(StatusConfirmed)
		repo.On("CancelTx", ctx, "o-1", StatusConfirmed).Return(true, nil)
		notifier.On("Notify", ctx, "u-1", "order_status", mock.Anything, mock.Anything).Return(nil)

		o, err := NewService(repo, stores, new(MockPaymentRecords), notifier).
			UpdateStatus(ctx, "owner-1", "o-1", StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.Status)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cancel loses race with payment", func(t *testing.T) {
		repo, stores, notifier := setup(StatusPending)
		repo.On("CancelTx", ctx, "o-1", StatusPending).Return(false, nil)

		_, err := NewService(repo, stores, new(MockPaymentRecords), notifier).
			UpdateStatus(ctx, "owner-1", "o-1", StatusCancelled)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirm without payment is refused", func(t *testing.T) {
		repo, stores, notifier := setup(StatusPending)
		payments := new(MockPaymentRecords)
		payments.On("GetByOrderID", ctx, "o-1").Return(nil, payment.ErrRecordNotFound)

		_, err := NewService(repo, stores, payments, notifier).UpdateStatus(ctx, "owner-1", "o-1", StatusConfirmed)
		assert.ErrorIs(t, err, ErrPaymentRequired)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirm after failed payment is refused", func(t *testing.T) {
		repo, stores, notifier := setup(StatusPending)
		payments := new(MockPaymentRecords)
		payments.On("GetByOrderID", ctx, "o-1").Return(&payment.Record{Status: payment.RecordFailed}, nil)

		_, err := NewService(repo, stores, payments, notifier).UpdateStatus(ctx, "owner-1", "o-1", StatusConfirmed)
		assert.ErrorIs(t, err, ErrPaymentRequired)
	})

	t.Run("Confirm with completed payment", func(t *testing.T) {
		repo, stores, notifier := setup(StatusPending)
		payments := new(MockPaymentRecords)
		payments.On("GetByOrderID", ctx, "o-1").Return(&payment.Record{Status: payment.RecordCompleted}, nil)
		repo.On("UpdateStatus", ctx, "o-1", StatusConfirmed).Return(nil)
		notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		o, err := NewService(repo, stores, payments, notifier).UpdateStatus(ctx, "owner-1", "o-1", StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
	})

	t.Run("Unknown status", func(t *testing.T) {
		_, err := NewService(new(MockRepository), new(MockStoreRepository), new(MockPaymentRecords), new(MockNotifier)).
			UpdateStatus(ctx, "owner-1", "o-1", Status("shipped"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
