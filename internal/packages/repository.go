package packages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetPackages(ctx context.Context, filter *PackageFilterInput, sort *PackageSortInput, limit, page int32, includeDisabled bool) ([]*Package, int64, error)
	GetPackage(ctx context.Context, id string, includeDisabled bool) (*Package, error)
	GetPackagePrice(ctx context.Context, id string) (decimal.Decimal, error)
	CreatePackage(ctx context.Context, input CreatePackageInput) (*Package, error)
	DeletePackage(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const packageItemsJoin = `
	LEFT JOIN package_products pp ON pp.package_id = p.id
	LEFT JOIN products pr ON pr.id = pp.product_id
`

const packageSelect = `
	SELECT
		p.id,
		p.name,
		p.description,
		p.price,
		p.image_url,
		p.is_active,
		p.created_at,
		pp.product_id,
		pr.name,
		pp.quantity
`

func (r *repository) GetPackages(
	ctx context.Context,
	filter *PackageFilterInput,
	sort *PackageSortInput,
	limit, page int32,
	includeDisabled bool,
) ([]*Package, int64, error) {

	// ---------- PAGINATION ----------
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	if page <= 0 {
		page = 1
	}

	offset := (page - 1) * limit

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetPackages"),
		zap.Int32("limit", limit),
		zap.Int32("page", page),
		zap.Bool("include_disabled", includeDisabled),
	)

	log.Debug("start get packages")

	whereClause := " WHERE 1=1"
	args := []any{}
	argIndex := 1

	// ---------- ENABLE / DISABLE ----------
	if !includeDisabled {
		whereClause += " AND p.is_active = TRUE"
	}

	// ---------- FILTERING ----------
	if filter != nil && filter.Name != nil && *filter.Name != "" {
		whereClause += fmt.Sprintf(" AND p.name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Name+"%")
		argIndex++
	}

	// ---------- COUNT ----------
	var total int64
	countQuery := "SELECT COUNT(*) FROM packages p" + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count packages", zap.Error(err))
		return nil, 0, err
	}

	// ---------- SORTING ----------
	orderBy := "p.created_at DESC"
	if sort != nil {
		dir := SortDirectionAsc
		if sort.Direction == SortDirectionDesc {
			dir = SortDirectionDesc
		}

		switch sort.Field {
		case PackageSortFieldName:
			orderBy = fmt.Sprintf("p.name %s", dir)
		case PackageSortFieldPrice:
			orderBy = fmt.Sprintf("p.price %s", dir)
		case PackageSortFieldCreatedAt:
			orderBy = fmt.Sprintf("p.created_at %s", dir)
		}
	}

	// ---------- QUERY ----------
	// Paginate packages first so LIMIT counts bundles, not joined item rows.
	query := packageSelect + `
		FROM (
			SELECT * FROM packages p` + whereClause +
		" ORDER BY " + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1) + `
		) p` + packageItemsJoin + " ORDER BY " + orderBy + ", pr.name"

	args = append(args, limit, offset)

	log.Debug("executing query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query packages", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	result, err := scanPackages(rows)
	if err != nil {
		log.Error("failed to scan packages", zap.Error(err))
		return nil, 0, err
	}

	log.Info("success get packages",
		zap.Int("package_count", len(result)),
	)

	return result, total, nil
}

func (r *repository) GetPackage(ctx context.Context, id string, includeDisabled bool) (*Package, error) {
	query := packageSelect + " FROM packages p" + packageItemsJoin + " WHERE p.id = $1"
	if !includeDisabled {
		query += " AND p.is_active = TRUE"
	}
	query += " ORDER BY pr.name"

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}
	defer rows.Close()

	result, err := scanPackages(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, ErrPackageNotFound
	}
	return result[0], nil
}

// scanPackages folds joined package/item rows into packages, keeping row order.
func scanPackages(rows *sql.Rows) ([]*Package, error) {
	packagesMap := make(map[string]*Package)
	result := []*Package{}

	for rows.Next() {
		var (
			pID, pName   string
			pDescription sql.NullString
			pPrice       decimal.Decimal
			pImageURL    sql.NullString
			pIsActive    bool
			pCreatedAt   time.Time

			itemProductID sql.NullString
			itemName      sql.NullString
			itemQuantity  sql.NullInt64
		)

		if err := rows.Scan(
			&pID,
			&pName,
			&pDescription,
			&pPrice,
			&pImageURL,
			&pIsActive,
			&pCreatedAt,
			&itemProductID,
			&itemName,
			&itemQuantity,
		); err != nil {
			return nil, err
		}

		pkg, exists := packagesMap[pID]
		if !exists {
			pkg = &Package{
				ID:        pID,
				Name:      pName,
				Price:     pPrice,
				IsActive:  pIsActive,
				Items:     []*PackageItem{},
				CreatedAt: pCreatedAt,
			}
			if pDescription.Valid {
				s := pDescription.String
				pkg.Description = &s
			}
			if pImageURL.Valid {
				s := pImageURL.String
				pkg.ImageURL = &s
			}
			packagesMap[pID] = pkg
			result = append(result, pkg)
		}

		if itemProductID.Valid {
			pkg.Items = append(pkg.Items, &PackageItem{
				ProductID:   itemProductID.String,
				ProductName: itemName.String,
				Quantity:    int(itemQuantity.Int64),
			})
		}
	}

	return result, rows.Err()
}

func (r *repository) GetPackagePrice(ctx context.Context, id string) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := r.db.QueryRowContext(ctx, `SELECT price FROM packages WHERE id = $1`, id).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrPackageNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("get package price: %w", err)
	}
	return price, nil
}

func (r *repository) CreatePackage(ctx context.Context, input CreatePackageInput) (*Package, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreatePackage"),
	)
	log.Debug("start create package transaction")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	pkg := &Package{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO packages (name, description, price, image_url, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, created_at
	`, input.Name, input.Description, input.Price, input.ImageURL).Scan(&pkg.ID, &pkg.CreatedAt)
	if err != nil {
		log.Error("failed to insert package", zap.Error(err))
		return nil, fmt.Errorf("create package: %w", err)
	}

	items := make([]*PackageItem, 0, len(input.Items))
	for _, item := range input.Items {
		var name string
		err := tx.QueryRowContext(ctx, "SELECT name FROM products WHERE id = $1", item.ProductID).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("package product not found", zap.String("product_id", item.ProductID))
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO package_products (package_id, product_id, quantity)
			VALUES ($1, $2, $3)
		`, pkg.ID, item.ProductID, item.Quantity)
		if err != nil {
			log.Error("failed to insert package product", zap.Error(err))
			return nil, err
		}

		items = append(items, &PackageItem{
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
		})
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}

	pkg.Items = items
	log.Info("success create package", zap.String("package_id", pkg.ID), zap.Int("items_count", len(items)))

	return pkg, nil
}

func (r *repository) DeletePackage(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPackageNotFound
	}
	return nil
}
