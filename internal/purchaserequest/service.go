package purchaserequest

import (
	"context"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListByStore(ctx context.Context, storeID string) ([]Request, error)
	Create(ctx context.Context, storeID string, in CreateInput) (*Request, error)
	// Update edits a request. The quantity can only change while the
	// request is pending; notes and delivery date until it is rejected or
	// completed. Leaving pending stamps ProcessedAt.
	Update(ctx context.Context, storeID, requestID string, in UpdateInput) (*Request, error)
	Delete(ctx context.Context, storeID, requestID string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) ListByStore(ctx context.Context, storeID string) ([]Request, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *service) Create(ctx context.Context, storeID string, in CreateInput) (*Request, error) {
	if in.RequestedQuantity < 1 {
		return nil, ErrInvalidQuantity
	}

	req := &Request{
		StoreID:              storeID,
		ProductID:            in.ProductID,
		RequestedQuantity:    in.RequestedQuantity,
		Notes:                in.Notes,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("purchase request created",
		zap.String("request_id", req.ID),
		zap.String("store_id", storeID),
		zap.String("product_id", in.ProductID),
		zap.Int("requested_quantity", in.RequestedQuantity),
	)
	return s.repo.GetByID(ctx, storeID, req.ID)
}

func (s *service) Update(ctx context.Context, storeID, requestID string, in UpdateInput) (*Request, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdatePurchaseRequest"),
		zap.String("request_id", requestID),
	)

	if in.RequestedQuantity == nil && in.Notes == nil && in.ExpectedDeliveryDate == nil && in.Status == nil {
		return nil, ErrEmptyUpdate
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if in.RequestedQuantity != nil && *in.RequestedQuantity < 1 {
		return nil, ErrInvalidQuantity
	}

	req, err := s.repo.GetByID(ctx, storeID, requestID)
	if err != nil {
		return nil, err
	}
	from := req.Status

	if in.RequestedQuantity != nil {
		if from != StatusPending {
			return nil, fmt.Errorf("%w: quantity is fixed once %s", ErrNotEditable, from)
		}
		req.RequestedQuantity = *in.RequestedQuantity
	}
	if in.Notes != nil || in.ExpectedDeliveryDate != nil {
		if from.Terminal() {
			return nil, fmt.Errorf("%w: request is %s", ErrNotEditable, from)
		}
		if in.Notes != nil {
			req.Notes = in.Notes
		}
		if in.ExpectedDeliveryDate != nil {
			req.ExpectedDeliveryDate = in.ExpectedDeliveryDate
		}
	}
	if in.Status != nil && *in.Status != from {
		if !canTransition(from, *in.Status) {
			log.Info("rejected status transition", zap.String("from", string(from)), zap.String("to", string(*in.Status)))
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, *in.Status)
		}
		now := s.now()
		req.Status = *in.Status
		req.ProcessedAt = &now
	}

	changed, err := s.repo.Update(ctx, req, from)
	if err != nil {
		log.Error("failed to update purchase request", zap.Error(err))
		return nil, err
	}
	if !changed {
		return nil, fmt.Errorf("%w: request is no longer %s", ErrInvalidTransition, from)
	}

	log.Info("purchase request updated", zap.String("status", string(req.Status)))
	return req, nil
}

func (s *service) Delete(ctx context.Context, storeID, requestID string) error {
	if err := s.repo.Delete(ctx, storeID, requestID); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("purchase request deleted",
		zap.String("request_id", requestID),
		zap.String("store_id", storeID),
	)
	return nil
}
