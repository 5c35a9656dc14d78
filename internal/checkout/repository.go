package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pqUniqueViolation = "23505"

type Repository interface {
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	CreateOrder(ctx context.Context, o *Order) error
	CreateOrderItems(ctx context.Context, orderID string, items []OrderItem) error
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, opts ListOrdersOptions) ([]*Order, int64, error)
	ListIncompleteOrders(ctx context.Context, before time.Time) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	o.id, o.order_number, o.customer_id, o.customer_name, o.customer_phone,
	o.governorate_id, o.shipping_address, o.notes,
	o.subtotal, o.shipping_cost, o.total, o.status,
	o.idempotency_key, o.cart_session, o.created_at, o.updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.CustomerPhone,
		&o.GovernorateID, &o.ShippingAddress, &o.Notes,
		&o.Subtotal, &o.ShippingCost, &o.Total, &o.Status,
		&o.IdempotencyKey, &o.CartSession, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ---------- ORDERS ----------

func (r *repository) GetOrderByIdempotencyKey(ctx context.Context, key string) (*Order, error) {
	q := `SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.idempotency_key = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order by idempotency key: %w", err)
	}
	return o, nil
}

func (r *repository) CreateOrder(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Checkout"),
		zap.String("method", "CreateOrder"),
		zap.String("order_number", o.OrderNumber),
	)

	const q = `
		INSERT INTO orders (
			id, order_number, customer_id, customer_name, customer_phone,
			governorate_id, shipping_address, notes, subtotal, shipping_cost,
			total, status, idempotency_key, cart_session
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, q,
		o.ID, o.OrderNumber, o.CustomerID, o.CustomerName, o.CustomerPhone,
		o.GovernorateID, o.ShippingAddress, o.Notes, o.Subtotal, o.ShippingCost,
		o.Total, o.Status, o.IdempotencyKey, o.CartSession,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateSubmission
		}
		log.Error("insert order failed", zap.Error(err))
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// ---------- ORDER ITEMS ----------

func (r *repository) CreateOrderItems(ctx context.Context, orderID string, items []OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO order_items (
			order_id, product_id, product_name, unit_price,
			quantity, line_total, size, color_options, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`

	for _, it := range items {
		if _, err := tx.ExecContext(ctx, q,
			orderID, it.ProductID, it.ProductName, it.UnitPrice,
			it.Quantity, it.LineTotal, it.Size, pq.Array(it.ColorOptions), it.Notes,
		); err != nil {
			return fmt.Errorf("insert order item %s: %w", it.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order items: %w", err)
	}
	return nil
}

func (r *repository) getOrderItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price,
		       quantity, line_total, size, color_options, notes
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.UnitPrice,
			&it.Quantity, &it.LineTotal, &it.Size, pq.Array(&it.ColorOptions), &it.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ---------- ADMIN ----------

func (r *repository) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) GetOrder(ctx context.Context, id string) (*Order, error) {
	q := `SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	o.Items, err = r.getOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListOrders(ctx context.Context, opts ListOrdersOptions) ([]*Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Checkout"),
		zap.String("method", "ListOrders"),
	)

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	var where []string
	var args []any
	if opts.Status != nil {
		args = append(args, string(*opts.Status))
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)))
	}
	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQ := `SELECT COUNT(*) FROM orders o ` + whereSQL
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	q := `SELECT ` + orderColumns + `
		FROM orders o
		` + whereSQL + fmt.Sprintf(`
		ORDER BY o.created_at DESC
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	orders, err := r.queryOrders(ctx, q, args...)
	if err != nil {
		log.Error("list query failed", zap.Error(err))
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) ListIncompleteOrders(ctx context.Context, before time.Time) ([]*Order, error) {
	q := `SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.status = $1 AND o.created_at < $2
		ORDER BY o.created_at ASC`

	return r.queryOrders(ctx, q, string(StatusDraft), before)
}

func (r *repository) queryOrders(ctx context.Context, q string, args ...any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
