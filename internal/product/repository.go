package product

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByStore(ctx context.Context, storeID string) ([]Item, error)
	GetItem(ctx context.Context, storeID, productID string) (*Item, error)
	// UpdateInventory applies the non-nil fields of in to the store's
	// inventory row and returns the updated item.
	UpdateInventory(ctx context.Context, storeID, productID string, in InventoryUpdate) (*Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemSelect = `
	SELECT p.id, i.store_id, p.name, p.description, p.category, p.image_url,
		COALESCE(i.price, p.price), i.quantity
	FROM inventory i
	JOIN products p ON p.id = i.product_id`

func scanItem(scan func(dest ...any) error) (*Item, error) {
	var it Item
	if err := scan(&it.ProductID, &it.StoreID, &it.Name, &it.Description,
		&it.Category, &it.ImageURL, &it.Price, &it.Stock); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, itemSelect+` WHERE i.store_id = $1 ORDER BY p.name`, storeID)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list inventory",
			zap.String("store_id", storeID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, storeID, productID string) (*Item, error) {
	row := r.db.QueryRowContext(ctx,
		itemSelect+` WHERE i.store_id = $1 AND i.product_id = $2`,
		storeID, productID,
	)

	it, err := scanItem(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (r *repository) UpdateInventory(ctx context.Context, storeID, productID string, in InventoryUpdate) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateInventory"),
		zap.String("store_id", storeID),
		zap.String("product_id", productID),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory
		SET price = COALESCE($3, price),
			quantity = COALESCE($4, quantity),
			updated_at = NOW()
		WHERE store_id = $1 AND product_id = $2
	`, storeID, productID, in.Price, in.Stock)
	if err != nil {
		log.Error("failed to update inventory", zap.Error(err))
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrItemNotFound
	}

	return r.GetItem(ctx, storeID, productID)
}
