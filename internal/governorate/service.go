package governorate

import (
	"context"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	ListGovernorates(ctx context.Context) ([]*Governorate, error)
	GetGovernorate(ctx context.Context, id string) (*Governorate, error)
	CreateGovernorate(ctx context.Context, input GovernorateInput) (*Governorate, error)
	UpdateGovernorate(ctx context.Context, id string, input GovernorateInput) (*Governorate, error)
	DeleteGovernorate(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ListGovernorates returns the active shipping zones; admins also see
// inactive ones.
func (s *service) ListGovernorates(ctx context.Context) ([]*Governorate, error) {
	return s.repo.List(ctx, utils.IsAdmin(ctx))
}

func (s *service) GetGovernorate(ctx context.Context, id string) (*Governorate, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !g.IsActive && !utils.IsAdmin(ctx) {
		return nil, ErrGovernorateNotFound
	}
	return g, nil
}

func (s *service) CreateGovernorate(ctx context.Context, input GovernorateInput) (*Governorate, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Governorate"),
		zap.String("method", "Create"),
	)

	if err := validate(&input); err != nil {
		return nil, err
	}

	g, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create governorate", zap.Error(err))
		return nil, err
	}

	log.Info("governorate created", zap.String("governorate_id", g.ID))
	return g, nil
}

func (s *service) UpdateGovernorate(ctx context.Context, id string, input GovernorateInput) (*Governorate, error) {
	if err := validate(&input); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, input)
}

func (s *service) DeleteGovernorate(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validate(input *GovernorateInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return ErrNameRequired
	}
	if input.ShippingCost.IsNegative() {
		return ErrNegativeShipping
	}
	return nil
}
