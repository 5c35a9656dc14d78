package governorate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]*Governorate, error)
	GetByID(ctx context.Context, id string) (*Governorate, error)
	Create(ctx context.Context, input GovernorateInput) (*Governorate, error)
	Update(ctx context.Context, id string, input GovernorateInput) (*Governorate, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]*Governorate, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Governorate"),
		zap.String("method", "List"),
	)

	q := `SELECT id, name, name_en, shipping_cost, is_active FROM governorates`
	if !includeInactive {
		q += ` WHERE is_active = true`
	}
	q += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	res := []*Governorate{}
	for rows.Next() {
		var g Governorate
		if err := rows.Scan(&g.ID, &g.Name, &g.NameEn, &g.ShippingCost, &g.IsActive); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, &g)
	}

	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Governorate, error) {
	const q = `
		SELECT id, name, name_en, shipping_cost, is_active
		FROM governorates
		WHERE id = $1
	`

	var g Governorate
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.Name, &g.NameEn, &g.ShippingCost, &g.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGovernorateNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("governorate_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return &g, nil
}

func (r *repository) Create(ctx context.Context, input GovernorateInput) (*Governorate, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	const q = `
		INSERT INTO governorates (name, name_en, shipping_cost, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, name_en, shipping_cost, is_active
	`

	var g Governorate
	err := r.db.QueryRowContext(ctx, q, input.Name, input.NameEn, input.ShippingCost, isActive).
		Scan(&g.ID, &g.Name, &g.NameEn, &g.ShippingCost, &g.IsActive)
	if err != nil {
		return nil, fmt.Errorf("create governorate: %w", err)
	}
	return &g, nil
}

func (r *repository) Update(ctx context.Context, id string, input GovernorateInput) (*Governorate, error) {
	const q = `
		UPDATE governorates
		SET name = $1, name_en = $2, shipping_cost = $3, is_active = COALESCE($4, is_active)
		WHERE id = $5
		RETURNING id, name, name_en, shipping_cost, is_active
	`

	var g Governorate
	err := r.db.QueryRowContext(ctx, q, input.Name, input.NameEn, input.ShippingCost, input.IsActive, id).
		Scan(&g.ID, &g.Name, &g.NameEn, &g.ShippingCost, &g.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGovernorateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update governorate: %w", err)
	}
	return &g, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM governorates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete governorate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrGovernorateNotFound
	}
	return nil
}
