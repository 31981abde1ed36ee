package graph

import (
	"context"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/product"
	"storefront-be/internal/store"
)

// Stores is the resolver for the stores field.
func (r *queryResolver) Stores(ctx context.Context) ([]*model.Store, error) {
	stores, err := r.StoreRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*model.Store, 0, len(stores))
	for _, s := range stores {
		list = append(list, toGraphQLStore(s))
	}
	return list, nil
}

// StoreProducts is the resolver for the storeProducts field.
func (r *queryResolver) StoreProducts(ctx context.Context, storeID string) ([]*model.Product, error) {
	if _, err := r.StoreRepo.GetByID(ctx, storeID); err != nil {
		return nil, err
	}

	items, err := r.ProductSvc.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return toGraphQLProducts(items), nil
}

// Inventory lists price and stock for the caller's store.
func (r *queryResolver) Inventory(ctx context.Context) ([]*model.Product, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	items, err := r.ProductSvc.ListByStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	return toGraphQLProducts(items), nil
}

// UpdateInventory is the resolver for the updateInventory field.
func (r *mutationResolver) UpdateInventory(ctx context.Context, productID string, input model.InventoryInput) (*model.Product, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	it, err := r.ProductSvc.UpdateInventory(ctx, st.ID, productID, product.InventoryUpdate{
		Price: input.Price,
		Stock: input.Stock,
	})
	if err != nil {
		return nil, err
	}
	return toGraphQLProduct(it), nil
}

// ownerStore returns the store run by the calling owner.
func (r *Resolver) ownerStore(ctx context.Context) (*store.Store, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return r.StoreRepo.GetByOwnerID(ctx, userID)
}
