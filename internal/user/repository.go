package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create inserts the user together with the customer role.
func (r *repository) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "User"),
		zap.String("method", "Create"),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	u := User{Email: email, Password: passwordHash, Role: utils.RoleCustomer}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
		u.ID, u.Role,
	); err != nil {
		log.Error("db: failed to insert user role", zap.String("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit user: %w", err)
	}
	return &u, nil
}

// FindByEmail resolves the user's effective role: admin when any admin role
// row exists, customer otherwise.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
		SELECT u.id, u.email, u.password, u.created_at,
			CASE WHEN EXISTS (
				SELECT 1 FROM user_roles ur WHERE ur.user_id = u.id AND ur.role = 'admin'
			) THEN 'admin' ELSE 'customer' END
		FROM users u
		WHERE u.email = $1
	`

	var u User
	err := r.db.QueryRowContext(ctx, q, email).Scan(&u.ID, &u.Email, &u.Password, &u.CreatedAt, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
