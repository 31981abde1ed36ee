package graph

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/graph/model"
)

func (r *queryResolver) Cart(ctx context.Context) (*model.Cart, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	c, err := r.CartSvc.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toGraphQLCart(c), nil
}

func (r *mutationResolver) AddCartItem(ctx context.Context, input model.AddCartItemInput) (*model.Cart, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	c, err := r.CartSvc.AddItem(ctx, userID, cart.AddItemInput{
		StoreID:   input.StoreID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return toGraphQLCart(c), nil
}

// UpdateCartItem sets a line's quantity. Zero removes the line.
func (r *mutationResolver) UpdateCartItem(ctx context.Context, input model.UpdateCartItemInput) (*model.Cart, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	c, err := r.CartSvc.UpdateQuantity(ctx, userID, input.ProductID, cart.UpdateQuantityInput{
		StoreID:  input.StoreID,
		Quantity: input.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return toGraphQLCart(c), nil
}

func (r *mutationResolver) RemoveCartItem(ctx context.Context, storeID, productID string) (*model.Cart, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	c, err := r.CartSvc.RemoveItem(ctx, userID, storeID, productID)
	if err != nil {
		return nil, err
	}
	return toGraphQLCart(c), nil
}

func (r *mutationResolver) ClearCart(ctx context.Context) (bool, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return false, err
	}

	if err := r.CartSvc.Clear(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}
