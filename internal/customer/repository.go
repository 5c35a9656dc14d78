package customer

import (
	"context"
	"database/sql"
	"errors"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// unique_violation
const pqUniqueViolation = "23505"

var errDuplicatePhone = errors.New("customer phone already exists")

type Repository interface {
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Customer"),
		zap.String("method", "FindByPhone"),
	)

	const q = `
		SELECT id, full_name, phone, email, address, governorate_id, created_at
		FROM customers
		WHERE phone = $1
		LIMIT 1
	`

	var c Customer
	err := r.db.QueryRowContext(ctx, q, phone).Scan(
		&c.ID, &c.FullName, &c.Phone, &c.Email,
		&c.Address, &c.GovernorateID, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return &c, nil
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Customer"),
		zap.String("method", "Create"),
		zap.String("customer_id", c.ID.String()),
	)

	const q = `
		INSERT INTO customers (id, full_name, phone, email, address, governorate_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, q,
		c.ID, c.FullName, c.Phone, c.Email, c.Address, c.GovernorateID,
	).Scan(&c.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return errDuplicatePhone
		}
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}
