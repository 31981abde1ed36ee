package product

import (
	"context"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	ListByStore(ctx context.Context, storeID string) ([]Item, error)
	// Quote returns the current store item, failing when fewer than qty
	// units are in stock.
	Quote(ctx context.Context, storeID, productID string, qty int) (*Item, error)
	UpdateInventory(ctx context.Context, storeID, productID string, in InventoryUpdate) (*Item, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListByStore(ctx context.Context, storeID string) ([]Item, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *service) Quote(ctx context.Context, storeID, productID string, qty int) (*Item, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	it, err := s.repo.GetItem(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	if it.Stock < qty {
		return nil, ErrInsufficientStock
	}
	return it, nil
}

func (s *service) UpdateInventory(ctx context.Context, storeID, productID string, in InventoryUpdate) (*Item, error) {
	if in.Price == nil && in.Stock == nil {
		return nil, ErrEmptyUpdate
	}

	it, err := s.repo.UpdateInventory(ctx, storeID, productID, in)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("inventory updated",
		zap.String("store_id", storeID),
		zap.String("product_id", productID),
		zap.Int64("price", it.Price),
		zap.Int("stock", it.Stock),
	)
	return it, nil
}
