package category

import (
	"context"
	"strings"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error)
	AddCategory(ctx context.Context, input NewCategoryInput) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context, filter *string, limit, page *int32) ([]*Category, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)
	log.Info("GetCategories started")

	categories, total, err := s.repo.GetCategories(ctx, filter, limit, page)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, 0, err
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, total, nil
}

func (s *service) AddCategory(ctx context.Context, input NewCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", input.Name),
	)

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		log.Warn("AddCategory validation failed: empty name")
		return nil, ErrNameRequired
	}

	category, err := s.repo.AddCategory(ctx, input)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.String("category_id", category.ID))
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		logger.FromCtx(ctx).Warn("failed to delete category",
			zap.String("category_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}
