package user

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, name, password string, role Role) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

func (r *repository) Create(ctx context.Context, email, name, password string, role Role) (*User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, name, password, role) VALUES ($1, $2, $3, $4)
		 RETURNING id, email, name, password, role, created_at`,
		email, name, password, role,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.Role, &u.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx,
		`SELECT id, email, name, password, role, created_at FROM users WHERE email = $1`, email)
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx,
		`SELECT id, email, name, password, role, created_at FROM users WHERE id = $1`, id)
}

func (r *repository) findOne(ctx context.Context, q string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, q, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
