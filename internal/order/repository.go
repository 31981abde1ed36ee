package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type Repository interface {
	// CreateOrderTx inserts the order and its items, decrements inventory
	// and consumes one use of the coupon in a single transaction.
	CreateOrderTx(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	// UpdateStatus overwrites the status unconditionally.
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	// TransitionStatus moves the order to `to` only if it is still in
	// `from`. It reports whether a row changed.
	TransitionStatus(ctx context.Context, orderID string, from, to Status) (bool, error)
	// CancelTx moves the order from `from` to cancelled, puts its item
	// quantities back into inventory and releases its coupon use. It
	// reports false when the order was no longer in `from`.
	CancelTx(ctx context.Context, orderID string, from Status) (bool, error)
	FindPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `o.id, o.customer_id, o.store_id, o.total_amount, o.discount_amount,
	o.final_amount, o.coupon_id, o.status, o.created_at, o.updated_at`

func scanOrder(scan func(dest ...any) error) (*Order, error) {
	var o Order
	err := scan(&o.ID, &o.CustomerID, &o.StoreID, &o.TotalAmount, &o.DiscountAmount,
		&o.FinalAmount, &o.CouponID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("customer_id", o.CustomerID),
		zap.String("store_id", o.StoreID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			customer_id, store_id, total_amount, discount_amount,
			final_amount, coupon_id, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at
	`,
		o.CustomerID, o.StoreID, o.TotalAmount, o.DiscountAmount,
		o.FinalAmount, o.CouponID, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 2. Insert items + deduct stock
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, name, unit_price, quantity, subtotal
			) VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`,
			o.ID, item.ProductID, item.Name, item.UnitPrice, item.Quantity, item.Subtotal,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.String("product_id", item.ProductID), zap.Error(err))
			return err
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE inventory
			SET quantity = quantity - $1
			WHERE store_id = $2 AND product_id = $3 AND quantity >= $1
		`, item.Quantity, o.StoreID, item.ProductID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			log.Info("stock ran out during checkout", zap.String("product_id", item.ProductID))
			return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Name)
		}
	}

	// 3. Consume coupon
	if o.CouponID != nil {
		res, err := tx.ExecContext(ctx, `
			UPDATE coupons
			SET used_count = used_count + 1
			WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)
		`, *o.CouponID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrCouponExhausted
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return err
	}

	log.Info("order created", zap.String("order_id", o.ID), zap.Int64("final_amount", o.FinalAmount))
	return nil
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, orderID)

	o, err := scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []Item{}
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "ListOrders"))

	query := `SELECT ` + orderColumns + ` FROM orders o WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.CustomerID != nil {
		query += fmt.Sprintf(" AND o.customer_id = $%d", argIndex)
		args = append(args, *filter.CustomerID)
		argIndex++
	}
	if filter.StoreID != nil {
		query += fmt.Sprintf(" AND o.store_id = $%d", argIndex)
		args = append(args, *filter.StoreID)
		argIndex++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND o.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query += fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, orderID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) TransitionStatus(ctx context.Context, orderID string, from, to Status) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, orderID, from,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) CancelTx(ctx context.Context, orderID string, from Status) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CancelTx"),
		zap.String("order_id", orderID),
		zap.String("from", string(from)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var storeID string
	var couponID *string
	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING store_id, coupon_id
	`, StatusCancelled, orderID, from).Scan(&storeID, &couponID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Error("failed to cancel order", zap.Error(err))
		return false, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE inventory AS i
		SET quantity = i.quantity + oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND i.store_id = $2 AND i.product_id = oi.product_id
	`, orderID, storeID)
	if err != nil {
		log.Error("failed to restore stock", zap.Error(err))
		return false, err
	}
	restocked, _ := res.RowsAffected()

	if couponID != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE coupons
			SET used_count = used_count - 1
			WHERE id = $1 AND used_count > 0
		`, *couponID); err != nil {
			log.Error("failed to release coupon use", zap.Error(err))
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cancellation", zap.Error(err))
		return false, err
	}

	log.Info("order cancelled", zap.Int64("restocked_lines", restocked), zap.Bool("coupon_released", couponID != nil))
	return true, nil
}

// FindPendingBefore returns pending orders created before cutoff, oldest
// first. Items are not loaded.
func (r *repository) FindPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.status = $1 AND o.created_at < $2
		ORDER BY o.created_at ASC
		LIMIT $3
	`, StatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	orders := []Order{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []Item{}
		}
	}
	return orders, nil
}

func (r *repository) fetchItems(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, unit_price, quantity, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]Item, len(orderIDs))
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Name,
			&it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return nil, err
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	return items, rows.Err()
}
