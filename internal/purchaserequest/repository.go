package purchaserequest

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

type Repository interface {
	ListByStore(ctx context.Context, storeID string) ([]Request, error)
	GetByID(ctx context.Context, storeID, requestID string) (*Request, error)
	// Create inserts r, snapshotting the store's current stock of the
	// product into CurrentQuantity.
	Create(ctx context.Context, r *Request) error
	// Update writes the editable fields of r only if the stored status is
	// still from. It reports whether a row changed.
	Update(ctx context.Context, r *Request, from Status) (bool, error)
	Delete(ctx context.Context, storeID, requestID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const requestSelect = `
	SELECT pr.id, pr.store_id, pr.product_id, p.name,
		pr.requested_quantity, pr.current_quantity, pr.status, pr.notes,
		pr.requested_at, pr.processed_at, pr.expected_delivery_date
	FROM purchase_requests pr
	JOIN products p ON p.id = pr.product_id`

func scanRequest(scan func(dest ...any) error) (*Request, error) {
	var r Request
	if err := scan(&r.ID, &r.StoreID, &r.ProductID, &r.ProductName,
		&r.RequestedQuantity, &r.CurrentQuantity, &r.Status, &r.Notes,
		&r.RequestedAt, &r.ProcessedAt, &r.ExpectedDeliveryDate); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repository) ListByStore(ctx context.Context, storeID string) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, requestSelect+`
		WHERE pr.store_id = $1
		ORDER BY pr.requested_at DESC`, storeID)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list purchase requests",
			zap.String("store_id", storeID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	requests := []Request{}
	for rows.Next() {
		req, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, storeID, requestID string) (*Request, error) {
	row := r.db.QueryRowContext(ctx, requestSelect+`
		WHERE pr.id = $1 AND pr.store_id = $2`, requestID, storeID)

	req, err := scanRequest(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO purchase_requests (
			store_id, product_id, requested_quantity, current_quantity,
			notes, expected_delivery_date
		) VALUES (
			$1, $2, $3,
			COALESCE((SELECT quantity FROM inventory WHERE store_id = $1 AND product_id = $2), 0),
			$4, $5
		)
		RETURNING id, current_quantity, status, requested_at
	`,
		req.StoreID, req.ProductID, req.RequestedQuantity, req.Notes, req.ExpectedDeliveryDate,
	).Scan(&req.ID, &req.CurrentQuantity, &req.Status, &req.RequestedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return ErrUnknownProduct
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert purchase request",
			zap.String("store_id", req.StoreID),
			zap.String("product_id", req.ProductID),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) Update(ctx context.Context, req *Request, from Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE purchase_requests SET
			requested_quantity = $1,
			notes = $2,
			expected_delivery_date = $3,
			status = $4,
			processed_at = $5
		WHERE id = $6 AND store_id = $7 AND status = $8
	`,
		req.RequestedQuantity, req.Notes, req.ExpectedDeliveryDate,
		req.Status, req.ProcessedAt,
		req.ID, req.StoreID, from,
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

func (r *repository) Delete(ctx context.Context, storeID, requestID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM purchase_requests WHERE id = $1 AND store_id = $2`,
		requestID, storeID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRequestNotFound
	}
	return nil
}
