package store

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Store, error)
	GetByOwnerID(ctx context.Context, ownerID string) (*Store, error)
	List(ctx context.Context) ([]Store, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const storeColumns = `id, owner_id, name, address, phone, created_at`

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

// GetByOwnerID returns the store an owner manages. Owners have exactly one.
func (r *repository) GetByOwnerID(ctx context.Context, ownerID string) (*Store, error) {
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE owner_id = $1`, ownerID)
}

func (r *repository) getOne(ctx context.Context, q string, arg any) (*Store, error) {
	var s Store
	err := r.db.QueryRowContext(ctx, q, arg).
		Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Phone, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]Store, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+storeColumns+` FROM stores ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := []Store{}
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.Address, &s.Phone, &s.CreatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
