package catalog

import (
	"context"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/pricing"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service exposes the catalog to the storefront, the cart and the admin API.
// Inactive products are hidden unless the caller is an admin.
type Service interface {
	ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error)
	ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error)
	DecrementStock(ctx context.Context, id string, quantity int) (StockChange, error)
	UpdateProductStock(ctx context.Context, id string, quantity int) error

	AddOffer(ctx context.Context, input NewOfferInput) (*pricing.Offer, error)
	DeleteOffer(ctx context.Context, productID, offerID string) error
	AddColor(ctx context.Context, input NewColorInput) (*Color, error)
	DeleteColor(ctx context.Context, productID, colorID string) error
	AddSize(ctx context.Context, input NewSizeInput) (*Size, error)
	DeleteSize(ctx context.Context, productID, sizeID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	opts.OnlyActive = !utils.IsAdmin(ctx)
	return s.repo.ListProducts(ctx, opts)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id, !utils.IsAdmin(ctx))
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if !input.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	p, err := s.repo.CreateProduct(ctx, input)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*Product, error) {
	if !input.hasAnyField() {
		return nil, ErrNoFieldsToUpdate
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrNameRequired
	}
	if input.Price != nil && !input.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	return s.repo.UpdateProduct(ctx, input)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		logger.FromCtx(ctx).Error("failed to delete product",
			zap.String("product_id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.repo.GetProductPrice(ctx, id)
}

func (s *service) ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error) {
	return s.repo.ListOffers(ctx, productID)
}

func (s *service) DecrementStock(ctx context.Context, id string, quantity int) (StockChange, error) {
	if quantity < 0 {
		return StockChange{}, ErrInvalidStock
	}
	return s.repo.DecrementStock(ctx, id, quantity)
}

func (s *service) UpdateProductStock(ctx context.Context, id string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidStock
	}
	return s.repo.UpdateProductStock(ctx, id, quantity)
}

func (s *service) AddOffer(ctx context.Context, input NewOfferInput) (*pricing.Offer, error) {
	if input.MinQuantity < 1 {
		return nil, ErrInvalidOfferRange
	}
	if input.MaxQuantity != nil && *input.MaxQuantity < input.MinQuantity {
		return nil, ErrInvalidOfferRange
	}
	if !input.OfferPrice.IsPositive() {
		return nil, ErrInvalidPrice
	}
	return s.repo.CreateOffer(ctx, input)
}

func (s *service) DeleteOffer(ctx context.Context, productID, offerID string) error {
	return s.repo.DeleteOffer(ctx, productID, offerID)
}

func (s *service) AddColor(ctx context.Context, input NewColorInput) (*Color, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrOptionNameEmpty
	}
	return s.repo.AddColor(ctx, input)
}

func (s *service) DeleteColor(ctx context.Context, productID, colorID string) error {
	return s.repo.DeleteColor(ctx, productID, colorID)
}

func (s *service) AddSize(ctx context.Context, input NewSizeInput) (*Size, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrOptionNameEmpty
	}
	return s.repo.AddSize(ctx, input)
}

func (s *service) DeleteSize(ctx context.Context, productID, sizeID string) error {
	return s.repo.DeleteSize(ctx, productID, sizeID)
}
