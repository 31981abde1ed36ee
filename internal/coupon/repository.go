package coupon

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListAvailable(ctx context.Context, storeID *string, now time.Time) ([]Coupon, error)
	ListByStore(ctx context.Context, storeID string) ([]Coupon, error)
	GetByID(ctx context.Context, couponID string) (*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, couponID, storeID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const couponColumns = `
	id, store_id, name, description,
	discount_type, discount_value, min_order_amount, max_discount_amount,
	valid_from, valid_until, is_active, usage_limit, used_count,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoupon(row rowScanner) (*Coupon, error) {
	var c Coupon
	err := row.Scan(
		&c.ID, &c.StoreID, &c.Name, &c.Description,
		&c.DiscountType, &c.DiscountValue, &c.MinOrderAmount, &c.MaxDiscountAmount,
		&c.ValidFrom, &c.ValidUntil, &c.IsActive, &c.UsageLimit, &c.UsedCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) query(ctx context.Context, q string, args ...any) ([]Coupon, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coupons := []Coupon{}
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, *c)
	}
	return coupons, rows.Err()
}

// ListAvailable returns coupons a customer can pick right now. With a store
// id, coupons of that store plus global ones are returned.
func (r *repository) ListAvailable(ctx context.Context, storeID *string, now time.Time) ([]Coupon, error) {
	q := `SELECT` + couponColumns + `
		FROM coupons
		WHERE is_active = TRUE
		  AND valid_from <= $1
		  AND valid_until >= $1
		  AND (usage_limit IS NULL OR used_count < usage_limit)`
	args := []any{now}

	if storeID != nil {
		q += ` AND (store_id = $2 OR store_id IS NULL)`
		args = append(args, *storeID)
	}
	q += ` ORDER BY created_at DESC`

	coupons, err := r.query(ctx, q, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list available coupons", zap.Error(err))
		return nil, err
	}
	return coupons, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID string) ([]Coupon, error) {
	return r.query(ctx,
		`SELECT`+couponColumns+` FROM coupons WHERE store_id = $1 ORDER BY created_at DESC`,
		storeID,
	)
}

func (r *repository) GetByID(ctx context.Context, couponID string) (*Coupon, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+couponColumns+` FROM coupons WHERE id = $1`, couponID)

	c, err := scanCoupon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c *Coupon) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO coupons (
			store_id, name, description,
			discount_type, discount_value, min_order_amount, max_discount_amount,
			valid_from, valid_until, is_active, usage_limit
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, used_count, created_at, updated_at
	`,
		c.StoreID, c.Name, c.Description,
		c.DiscountType, c.DiscountValue, c.MinOrderAmount, c.MaxDiscountAmount,
		c.ValidFrom, c.ValidUntil, c.IsActive, c.UsageLimit,
	).Scan(&c.ID, &c.UsedCount, &c.CreatedAt, &c.UpdatedAt)
}

// Update replaces the editable fields of a coupon owned by c.StoreID.
func (r *repository) Update(ctx context.Context, c *Coupon) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE coupons SET
			name = $1, description = $2,
			discount_type = $3, discount_value = $4,
			min_order_amount = $5, max_discount_amount = $6,
			valid_from = $7, valid_until = $8,
			is_active = $9, usage_limit = $10,
			updated_at = NOW()
		WHERE id = $11 AND store_id = $12
		RETURNING used_count, created_at, updated_at
	`,
		c.Name, c.Description,
		c.DiscountType, c.DiscountValue,
		c.MinOrderAmount, c.MaxDiscountAmount,
		c.ValidFrom, c.ValidUntil,
		c.IsActive, c.UsageLimit,
		c.ID, c.StoreID,
	).Scan(&c.UsedCount, &c.CreatedAt, &c.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrCouponNotFound
	}
	return err
}

func (r *repository) Delete(ctx context.Context, couponID, storeID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM coupons WHERE id = $1 AND store_id = $2`,
		couponID, storeID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCouponNotFound
	}
	return nil
}
