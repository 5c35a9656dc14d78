package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetProduct(ctx context.Context, id string, onlyActive bool) (*Product, error)
	ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error)
	DecrementStock(ctx context.Context, id string, quantity int) (StockChange, error)
	UpdateProductStock(ctx context.Context, id string, quantity int) error

	ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error)
	CreateOffer(ctx context.Context, input NewOfferInput) (*pricing.Offer, error)
	DeleteOffer(ctx context.Context, productID, offerID string) error

	AddColor(ctx context.Context, input NewColorInput) (*Color, error)
	DeleteColor(ctx context.Context, productID, colorID string) error
	AddSize(ctx context.Context, input NewSizeInput) (*Size, error)
	DeleteSize(ctx context.Context, productID, sizeID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `p.id, p.name, p.name_en, p.description, p.price, p.stock_quantity,
	p.category_id, p.image_url, p.is_active, p.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.NameEn,
		&p.Description,
		&p.Price,
		&p.StockQuantity,
		&p.CategoryID,
		&p.ImageURL,
		&p.IsActive,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetProduct(ctx context.Context, id string, onlyActive bool) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProduct"),
		zap.String("product_id", id),
	)

	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	if onlyActive {
		query += ` AND p.is_active = TRUE`
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return nil, fmt.Errorf("get product: %w", err)
	}

	if p.Colors, err = r.listColors(ctx, id); err != nil {
		log.Error("failed to load product colors", zap.Error(err))
		return nil, err
	}
	if p.Sizes, err = r.listSizes(ctx, id); err != nil {
		log.Error("failed to load product sizes", zap.Error(err))
		return nil, err
	}
	if p.Offers, err = r.ListOffers(ctx, id); err != nil {
		log.Error("failed to load product offers", zap.Error(err))
		return nil, err
	}

	return p, nil
}

func (r *repository) ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	// ---------- DEFAULTS ----------
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
	offset := (page - 1) * limit

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
		zap.Int("limit", limit),
		zap.Int("page", page),
	)

	// ---------- FILTER ----------
	where := []string{}
	args := []any{}

	if opts.OnlyActive {
		where = append(where, "p.is_active = TRUE")
	}
	if opts.CategoryID != nil && *opts.CategoryID != "" {
		args = append(args, *opts.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if opts.Search != nil && strings.TrimSpace(*opts.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*opts.Search)+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.name_en ILIKE $%d)", len(args), len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- COUNT ----------
	var total int64
	countQuery := `SELECT COUNT(*) FROM products p` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count products failed", zap.Error(err))
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	// ---------- DATA ----------
	query := `SELECT ` + productColumns + ` FROM products p` + whereClause +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	log.Debug("Executing ListProducts query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed ListProducts", zap.Error(err))
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *repository) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	query := `
		INSERT INTO products (name, name_en, description, price, stock_quantity, category_id, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, name_en, description, price, stock_quantity, category_id, image_url, is_active, created_at
	`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query,
		input.Name,
		input.NameEn,
		input.Description,
		input.Price,
		input.StockQuantity,
		input.CategoryID,
		input.ImageURL,
		isActive,
	))
	if err != nil {
		logger.FromCtx(ctx).Error("create product failed", zap.Error(err))
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (r *repository) UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error) {
	set := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.NameEn != nil {
		add("name_en", *input.NameEn)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.Price != nil {
		add("price", *input.Price)
	}
	if input.StockQuantity != nil {
		add("stock_quantity", *input.StockQuantity)
	}
	if input.CategoryID != nil {
		add("category_id", *input.CategoryID)
	}
	if input.ImageURL != nil {
		add("image_url", *input.ImageURL)
	}
	if input.IsActive != nil {
		add("is_active", *input.IsActive)
	}

	if len(set) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	args = append(args, input.ID)
	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d
		RETURNING id, name, name_en, description, price, stock_quantity, category_id, image_url, is_active, created_at`,
		strings.Join(set, ", "), len(args),
	)

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (r *repository) DeleteProduct(ctx context.Context, id string) error {
	return r.execDelete(ctx, `DELETE FROM products WHERE id = $1`, ErrProductNotFound, id)
}

func (r *repository) GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT price FROM products WHERE id = $1`, id).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrProductNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("get product price: %w", err)
	}
	return price, nil
}

// DecrementStock subtracts quantity in a single statement, floored at zero.
// The row lock taken by the subselect serialises concurrent checkouts.
func (r *repository) DecrementStock(ctx context.Context, id string, quantity int) (StockChange, error) {
	var c StockChange
	err := r.db.QueryRowContext(ctx, `
		UPDATE products p
		SET stock_quantity = GREATEST(p.stock_quantity - $1, 0)
		FROM (SELECT id, stock_quantity FROM products WHERE id = $2 FOR UPDATE) prev
		WHERE p.id = prev.id
		RETURNING prev.stock_quantity, p.stock_quantity`,
		quantity, id,
	).Scan(&c.Previous, &c.Remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return StockChange{}, ErrProductNotFound
	}
	if err != nil {
		return StockChange{}, fmt.Errorf("decrement stock: %w", err)
	}
	c.Clamped = c.Previous < quantity
	return c, nil
}

func (r *repository) UpdateProductStock(ctx context.Context, id string, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET stock_quantity = $1 WHERE id = $2`,
		quantity, id,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, min_quantity, max_quantity, offer_price
		FROM product_offers
		WHERE product_id = $1
		ORDER BY min_quantity ASC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	offers := []pricing.Offer{}
	for rows.Next() {
		var (
			o      pricing.Offer
			maxQty sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &o.ProductID, &o.MinQuantity, &maxQty, &o.OfferPrice); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		if maxQty.Valid {
			v := int(maxQty.Int64)
			o.MaxQuantity = &v
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (r *repository) CreateOffer(ctx context.Context, input NewOfferInput) (*pricing.Offer, error) {
	var (
		o      pricing.Offer
		maxQty sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_offers (product_id, min_quantity, max_quantity, offer_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, min_quantity, max_quantity, offer_price
	`, input.ProductID, input.MinQuantity, input.MaxQuantity, input.OfferPrice).
		Scan(&o.ID, &o.ProductID, &o.MinQuantity, &maxQty, &o.OfferPrice)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	if maxQty.Valid {
		v := int(maxQty.Int64)
		o.MaxQuantity = &v
	}
	return &o, nil
}

func (r *repository) DeleteOffer(ctx context.Context, productID, offerID string) error {
	return r.execDelete(ctx,
		`DELETE FROM product_offers WHERE id = $1 AND product_id = $2`,
		ErrOfferNotFound, offerID, productID,
	)
}

func (r *repository) listColors(ctx context.Context, productID string) ([]Color, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, name, hex_code FROM product_colors WHERE product_id = $1 ORDER BY name`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()

	colors := []Color{}
	for rows.Next() {
		var c Color
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Name, &c.HexCode); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}

func (r *repository) listSizes(ctx context.Context, productID string) ([]Size, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, name FROM product_sizes WHERE product_id = $1 ORDER BY name`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()

	sizes := []Size{}
	for rows.Next() {
		var s Size
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		sizes = append(sizes, s)
	}
	return sizes, rows.Err()
}

func (r *repository) AddColor(ctx context.Context, input NewColorInput) (*Color, error) {
	var c Color
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_colors (product_id, name, hex_code)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, name, hex_code
	`, input.ProductID, input.Name, input.HexCode).
		Scan(&c.ID, &c.ProductID, &c.Name, &c.HexCode)
	if err != nil {
		return nil, fmt.Errorf("add color: %w", err)
	}
	return &c, nil
}

func (r *repository) DeleteColor(ctx context.Context, productID, colorID string) error {
	return r.execDelete(ctx,
		`DELETE FROM product_colors WHERE id = $1 AND product_id = $2`,
		ErrColorNotFound, colorID, productID,
	)
}

func (r *repository) AddSize(ctx context.Context, input NewSizeInput) (*Size, error) {
	var s Size
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_sizes (product_id, name)
		VALUES ($1, $2)
		RETURNING id, product_id, name
	`, input.ProductID, input.Name).
		Scan(&s.ID, &s.ProductID, &s.Name)
	if err != nil {
		return nil, fmt.Errorf("add size: %w", err)
	}
	return &s, nil
}

func (r *repository) DeleteSize(ctx context.Context, productID, sizeID string) error {
	return r.execDelete(ctx,
		`DELETE FROM product_sizes WHERE id = $1 AND product_id = $2`,
		ErrSizeNotFound, sizeID, productID,
	)
}

func (r *repository) execDelete(ctx context.Context, query string, notFound error, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound
	}
	return nil
}
