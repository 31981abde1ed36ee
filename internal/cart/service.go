package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	Get(ctx context.Context, ownerID string) (*Cart, error)
	AddItem(ctx context.Context, ownerID string, input AddItemInput) (*Cart, error)
	// UpdateQuantity sets a line's quantity; zero removes the line.
	UpdateQuantity(ctx context.Context, ownerID, productID string, input UpdateQuantityInput) (*Cart, error)
	RemoveItem(ctx context.Context, ownerID, storeID, productID string) (*Cart, error)
	Clear(ctx context.Context, ownerID string) error
}

type service struct {
	repo     Repository
	products product.Service
	now      func() time.Time
}

func NewService(repo Repository, products product.Service) Service {
	return &service{repo: repo, products: products, now: time.Now}
}

func (s *service) Get(ctx context.Context, ownerID string) (*Cart, error) {
	c, err := s.repo.Get(ctx, ownerID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load cart", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCart, err)
	}
	return c, nil
}

func (s *service) AddItem(ctx context.Context, ownerID string, input AddItemInput) (*Cart, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	qty := input.Quantity
	idx := c.find(input.StoreID, input.ProductID)
	if idx >= 0 {
		qty += c.Lines[idx].Quantity
	}

	item, err := s.products.Quote(ctx, input.StoreID, input.ProductID, qty)
	if err != nil {
		return nil, err
	}

	line := Line{
		ProductID: item.ProductID,
		StoreID:   item.StoreID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  qty,
	}
	if idx >= 0 {
		c.Lines[idx] = line
	} else {
		c.Lines = append(c.Lines, line)
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateQuantity(ctx context.Context, ownerID, productID string, input UpdateQuantityInput) (*Cart, error) {
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if input.Quantity == 0 {
		return s.RemoveItem(ctx, ownerID, input.StoreID, productID)
	}

	c, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	idx := c.find(input.StoreID, productID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}

	item, err := s.products.Quote(ctx, input.StoreID, productID, input.Quantity)
	if err != nil {
		return nil, err
	}

	c.Lines[idx].Quantity = input.Quantity
	c.Lines[idx].UnitPrice = item.Price
	c.Lines[idx].Name = item.Name

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) RemoveItem(ctx context.Context, ownerID, storeID, productID string) (*Cart, error) {
	c, err := s.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	idx := c.find(storeID, productID)
	if idx < 0 {
		return nil, ErrCartItemNotFound
	}
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Clear(ctx context.Context, ownerID string) error {
	if err := s.repo.Delete(ctx, ownerID); err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart", zap.String("owner_id", ownerID), zap.Error(err))
		return errors.Join(ErrFailedClearCart, err)
	}
	return nil
}

func (s *service) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, c); err != nil {
		logger.FromCtx(ctx).Error("failed to save cart", zap.String("owner_id", c.OwnerID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return nil
}
