package packages

import (
	"context"
	"errors"
	"testing"

	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func mockContextWithRole(role string) context.Context {
	return utils.SetUserContext(context.Background(), "user-1", "test@example.com", role)
}

func (m *MockRepository) GetPackages(ctx context.Context, filter *PackageFilterInput, sort *PackageSortInput, limit, page int32, includeDisabled bool) ([]*Package, int64, error) {
	args := m.Called(ctx, filter, sort, limit, page, includeDisabled)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Package), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) GetPackage(ctx context.Context, id string, includeDisabled bool) (*Package, error) {
	args := m.Called(ctx, id, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Package), args.Error(1)
}

func (m *MockRepository) GetPackagePrice(ctx context.Context, id string) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRepository) CreatePackage(ctx context.Context, input CreatePackageInput) (*Package, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Package), args.Error(1)
}

func (m *MockRepository) DeletePackage(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_GetPackages(t *testing.T) {
	t.Run("Customer", func(t *testing.T) {
		ctx := mockContextWithRole(utils.RoleCustomer)
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetPackages", ctx, (*PackageFilterInput)(nil), (*PackageSortInput)(nil), int32(10), int32(1), false).
			Return([]*Package{{ID: "pkg1"}}, int64(1), nil)

		pkgs, total, err := svc.GetPackages(ctx, nil, nil, 10, 1)
		require.NoError(t, err)
		assert.Len(t, pkgs, 1)
		assert.Equal(t, int64(1), total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Admin includes disabled", func(t *testing.T) {
		ctx := mockContextWithRole(utils.RoleAdmin)
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetPackages", ctx, mock.Anything, mock.Anything, int32(20), int32(1), true).
			Return([]*Package{}, int64(0), nil)

		_, _, err := svc.GetPackages(ctx, nil, nil, 20, 1)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetPackages", ctx, mock.Anything, mock.Anything, int32(10), int32(1), false).
			Return(nil, int64(0), errors.New("db error"))

		_, _, err := svc.GetPackages(ctx, nil, nil, 10, 1)
		assert.Error(t, err)
	})
}

func TestService_AddPackage(t *testing.T) {
	valid := CreatePackageInput{
		Name:  "Set",
		Price: decimal.NewFromInt(300),
		Items: []CreatePackageItemInput{{ProductID: "p1", Quantity: 3}},
	}

	t.Run("Success", func(t *testing.T) {
		ctx := mockContextWithRole(utils.RoleAdmin)
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("CreatePackage", ctx, valid).Return(&Package{ID: "pkg1"}, nil)

		pkg, err := svc.AddPackage(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, "pkg1", pkg.ID)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		svc := NewService(new(MockRepository))
		_, err := svc.AddPackage(mockContextWithRole(utils.RoleCustomer), valid)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("Validation", func(t *testing.T) {
		ctx := mockContextWithRole(utils.RoleAdmin)
		svc := NewService(new(MockRepository))

		in := valid
		in.Name = " "
		_, err := svc.AddPackage(ctx, in)
		assert.ErrorIs(t, err, ErrNameRequired)

		in = valid
		in.Price = decimal.Zero
		_, err = svc.AddPackage(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		in = valid
		in.Items = nil
		_, err = svc.AddPackage(ctx, in)
		assert.ErrorIs(t, err, ErrEmptyPackage)

		in = valid
		in.Items = []CreatePackageItemInput{{ProductID: "p1", Quantity: 0}}
		_, err = svc.AddPackage(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidItemAmount)
	})
}

func TestService_DeletePackage(t *testing.T) {
	ctx := mockContextWithRole(utils.RoleAdmin)
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo)

	mockRepo.On("DeletePackage", ctx, "pkg1").Return(nil)
	assert.NoError(t, svc.DeletePackage(ctx, "pkg1"))

	assert.ErrorIs(t, svc.DeletePackage(context.Background(), "pkg1"), ErrUnauthorized)
}

func TestPackage_PieceCount(t *testing.T) {
	p := Package{Items: []*PackageItem{{Quantity: 2}, {Quantity: 1}}}
	assert.Equal(t, 3, p.PieceCount())
	assert.Equal(t, 0, Package{}.PieceCount())
}
