package packages

import (
	"context"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	GetPackages(ctx context.Context, filter *PackageFilterInput, sort *PackageSortInput, limit, page int32) ([]*Package, int64, error)
	GetPackage(ctx context.Context, id string) (*Package, error)
	GetPackagePrice(ctx context.Context, id string) (decimal.Decimal, error)
	AddPackage(ctx context.Context, input CreatePackageInput) (*Package, error)
	DeletePackage(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetPackages(
	ctx context.Context,
	filter *PackageFilterInput,
	sort *PackageSortInput,
	limit, page int32,
) ([]*Package, int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetPackages"),
		zap.Int32("limit", limit),
		zap.Int32("page", page),
	)
	log.Debug("start get packages")

	pkgs, total, err := s.repo.GetPackages(ctx, filter, sort, limit, page, utils.IsAdmin(ctx))
	if err != nil {
		log.Error("failed to get packages", zap.Error(err))
		return nil, 0, err
	}

	log.Info("success get packages", zap.Int("count", len(pkgs)), zap.Int64("total", total))
	return pkgs, total, nil
}

func (s *service) GetPackage(ctx context.Context, id string) (*Package, error) {
	return s.repo.GetPackage(ctx, id, utils.IsAdmin(ctx))
}

func (s *service) GetPackagePrice(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.repo.GetPackagePrice(ctx, id)
}

func (s *service) AddPackage(ctx context.Context, input CreatePackageInput) (*Package, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddPackage"),
		zap.String("name", input.Name),
	)
	log.Info("start add package")

	if !utils.IsAdmin(ctx) {
		log.Warn("unauthorized: package creation requires admin")
		return nil, ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if !input.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyPackage
	}
	for _, it := range input.Items {
		if it.Quantity < 1 {
			return nil, ErrInvalidItemAmount
		}
	}

	pkg, err := s.repo.CreatePackage(ctx, input)
	if err != nil {
		log.Error("failed to create package", zap.Error(err))
		return nil, err
	}

	log.Info("success create package", zap.String("package_id", pkg.ID))
	return pkg, nil
}

func (s *service) DeletePackage(ctx context.Context, id string) error {
	if !utils.IsAdmin(ctx) {
		return ErrUnauthorized
	}
	return s.repo.DeletePackage(ctx, id)
}
