package order

import (
	"context"
	"errors"
	"fmt"

	"storefront-be/internal/logger"
	"storefront-be/internal/payment"
	"storefront-be/internal/store"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// Notifier delivers a message to one user. Delivery is best-effort.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, message string) error
}

// PaymentRecords looks up the recorded payment outcome of an order.
type PaymentRecords interface {
	GetByOrderID(ctx context.Context, orderID string) (*payment.Record, error)
}

type Service interface {
	// GetDetail returns an order visible to the caller in ctx: its
	// customer, the owner of its store, or an admin.
	GetDetail(ctx context.Context, orderID string) (*Order, error)
	ListForCustomer(ctx context.Context, customerID string, filter ListFilter) ([]Order, error)
	ListForOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Order, error)
	ListAll(ctx context.Context, filter ListFilter) ([]Order, error)
	// UpdateStatus is the owner-driven transition. Forward moves are a
	// plain overwrite, so concurrent updates resolve last-write-wins.
	// Cancelling restores stock and coupon use and only applies if the
	// order is still in the status it was read in. Confirming a pending
	// order requires a completed payment record.
	UpdateStatus(ctx context.Context, ownerID, orderID string, to Status) (*Order, error)
}

type service struct {
	repo     Repository
	stores   store.Repository
	payments PaymentRecords
	notifier Notifier
}

func NewService(repo Repository, stores store.Repository, payments PaymentRecords, notifier Notifier) Service {
	return &service{repo: repo, stores: stores, payments: payments, notifier: notifier}
}

func (s *service) GetDetail(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	userID, _ := utils.GetUserIDFromContext(ctx)
	switch user.Role(utils.GetUserRoleFromContext(ctx)) {
	case user.RoleAdmin:
		return o, nil
	case user.RoleOwner:
		st, err := s.stores.GetByOwnerID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrStoreNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		if st.ID == o.StoreID {
			return o, nil
		}
	}

	if o.CustomerID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID string, filter ListFilter) ([]Order, error) {
	filter.CustomerID = &customerID
	filter.StoreID = nil
	return s.repo.List(ctx, filter)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string, filter ListFilter) ([]Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	st, err := s.stores.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	filter.StoreID = &st.ID
	filter.CustomerID = nil
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context, filter ListFilter) ([]Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, ownerID, orderID string, to Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.String("order_id", orderID),
		zap.String("to", string(to)),
	)

	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	st, err := s.stores.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.StoreID != st.ID {
		return nil, ErrOrderNotFound
	}

	if !CanTransition(o.Status, to) {
		log.Info("rejected status transition", zap.String("from", string(o.Status)))
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}

	if o.Status == StatusPending && to == StatusConfirmed {
		rec, err := s.payments.GetByOrderID(ctx, orderID)
		if errors.Is(err, payment.ErrRecordNotFound) || (err == nil && rec.Status != payment.RecordCompleted) {
			log.Info("refused to confirm unpaid order")
			return nil, ErrPaymentRequired
		}
		if err != nil {
			return nil, err
		}
	}

	if to == StatusCancelled {
		changed, err := s.repo.CancelTx(ctx, orderID, o.Status)
		if err != nil {
			log.Error("failed to cancel order", zap.Error(err))
			return nil, err
		}
		if !changed {
			return nil, fmt.Errorf("%w: order is no longer %s", ErrInvalidTransition, o.Status)
		}
	} else if err := s.repo.UpdateStatus(ctx, orderID, to); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}
	o.Status = to

	if err := s.notifier.Notify(ctx, o.CustomerID, "order_status",
		"Order update",
		fmt.Sprintf("Your order at %s is now %s.", st.Name, to),
	); err != nil {
		log.Warn("failed to notify customer", zap.Error(err))
	}

	log.Info("order status updated")
	return o, nil
}
