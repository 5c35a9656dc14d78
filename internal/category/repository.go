package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

type Repository interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error)
	AddCategory(ctx context.Context, input NewCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(
	ctx context.Context,
	filter *string,
	limit *int32,
	page *int32,
) ([]*Category, int64, error) {

	// ---------- DEFAULTS ----------
	finalLimit := int32(50)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}

	finalOffset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("filter", utils.PtrString(filter)),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)
	log.Info("GetCategories started")

	where := []string{}
	args := []interface{}{}

	// ---------- FILTER ----------
	if filter != nil && *filter != "" {
		where = append(where, fmt.Sprintf("(c.name ILIKE $%d OR c.name_en ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+*filter+"%")
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	// ---------- COUNT ----------
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories c"+whereClause, args...).Scan(&total); err != nil {
		log.Error("DB count failed GetCategories", zap.Error(err))
		return nil, 0, err
	}

	// ---------- QUERY ----------
	query := "SELECT c.id, c.name, c.name_en FROM categories c" + whereClause +
		" ORDER BY c.name ASC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	log.Debug("Executing GetCategories query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	categories := []*Category{}

	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.NameEn); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, 0, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *repository) AddCategory(
	ctx context.Context,
	input NewCategoryInput,
) (*Category, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("category_name", input.Name),
	)
	log.Info("AddCategory started")

	query := `
		INSERT INTO categories (name, name_en)
		VALUES ($1, $2)
		RETURNING id, name, name_en
	`

	var c Category

	err := r.db.QueryRowContext(ctx, query, input.Name, input.NameEn).
		Scan(&c.ID, &c.Name, &c.NameEn)
	if err != nil {
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success",
		zap.String("category_id", c.ID),
	)

	return &c, nil
}

func (r *repository) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
