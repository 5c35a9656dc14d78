package customer

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Create(ctx context.Context, input CustomerInput) (*Customer, error)
	FindOrCreate(ctx context.Context, input CustomerInput) (*Customer, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) FindByPhone(ctx context.Context, phone string) (*Customer, error) {
	phone = utils.NormalizePhone(phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	return s.repo.FindByPhone(ctx, phone)
}

func (s *service) Create(ctx context.Context, input CustomerInput) (*Customer, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Customer"),
		zap.String("method", "Create"),
	)

	c, err := newCustomer(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		log.Error("failed to create customer", zap.Error(err))
		return nil, err
	}

	log.Info("customer created", zap.String("customer_id", c.ID.String()))
	return c, nil
}

// FindOrCreate returns the customer registered under the input's phone
// number, creating one when none exists. A concurrent insert of the same
// phone resolves to the stored record.
func (s *service) FindOrCreate(ctx context.Context, input CustomerInput) (*Customer, error) {
	c, err := newCustomer(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByPhone(ctx, c.Phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrCustomerNotFound) {
		return nil, err
	}

	err = s.repo.Create(ctx, c)
	if errors.Is(err, errDuplicatePhone) {
		return s.repo.FindByPhone(ctx, c.Phone)
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create customer", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func newCustomer(input CustomerInput) (*Customer, error) {
	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}
	phone := utils.NormalizePhone(input.Phone)
	if len(strings.TrimPrefix(phone, "+")) < 7 {
		return nil, ErrPhoneRequired
	}
	address := strings.TrimSpace(input.Address)
	if address == "" {
		return nil, ErrAddressRequired
	}

	return &Customer{
		ID:            uuid.New(),
		FullName:      name,
		Phone:         phone,
		Email:         input.Email,
		Address:       address,
		GovernorateID: input.GovernorateID,
	}, nil
}
