package payment

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// SaveRecord inserts r unless the order already has a record. It
	// reports whether this call inserted it.
	SaveRecord(ctx context.Context, r *Record) (bool, error)
	GetByOrderID(ctx context.Context, orderID string) (*Record, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveRecord(ctx context.Context, rec *Record) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SaveRecord"),
		zap.String("order_id", rec.OrderID),
		zap.String("status", string(rec.Status)),
	)

	const q = `
	INSERT INTO payments (
		order_id, payment_key, amount, method, status, failure_reason, approved_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (order_id)
	DO NOTHING
	RETURNING id, created_at;
	`

	err := r.db.QueryRowContext(ctx, q,
		rec.OrderID, rec.PaymentKey, rec.Amount, rec.Method,
		rec.Status, rec.FailureReason, rec.ApprovedAt,
	).Scan(&rec.ID, &rec.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		log.Info("payment record already exists")
		return false, nil
	}
	if err != nil {
		log.Error("failed to insert payment record", zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, payment_key, amount, method, status, failure_reason, approved_at, created_at
		FROM payments WHERE order_id = $1
	`, orderID)

	var p Record
	err := row.Scan(
		&p.ID, &p.OrderID, &p.PaymentKey, &p.Amount, &p.Method,
		&p.Status, &p.FailureReason, &p.ApprovedAt, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
