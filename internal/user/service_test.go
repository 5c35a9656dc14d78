package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, email, passwordHash string) (*User, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Generate(userID, email, role string) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := new(MockTokenIssuer)
		svc := NewService(mockRepo, tokens)

		mockRepo.On("Create", ctx, "test@example.com", mock.MatchedBy(func(hash string) bool {
			return CheckPasswordHash("password123", hash)
		})).Return(&User{ID: "u1", Email: "test@example.com", Role: "customer"}, nil)
		tokens.On("Generate", "u1", "test@example.com", "customer").Return("jwt-token", nil)

		res, err := svc.Register(ctx, "  Test@Example.com ", "password123")
		require.NoError(t, err)
		assert.Equal(t, "jwt-token", res.Token)
		assert.Equal(t, "u1", res.User.ID)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockTokenIssuer))
		_, err := svc.Register(ctx, "not-an-email", "password123")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockTokenIssuer))
		_, err := svc.Register(ctx, "a@b.co", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("EmailExists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenIssuer))
		mockRepo.On("Create", ctx, "a@b.co", mock.Anything).Return(nil, ErrEmailExists)

		_, err := svc.Register(ctx, "a@b.co", "password123")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("TokenError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := new(MockTokenIssuer)
		svc := NewService(mockRepo, tokens)
		mockRepo.On("Create", ctx, "a@b.co", mock.Anything).Return(&User{ID: "u1", Email: "a@b.co", Role: "customer"}, nil)
		tokens.On("Generate", "u1", "a@b.co", "customer").Return("", errors.New("no secret"))

		_, err := svc.Register(ctx, "a@b.co", "password123")
		assert.EqualError(t, err, "no secret")
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		tokens := new(MockTokenIssuer)
		svc := NewService(mockRepo, tokens)

		mockRepo.On("FindByEmail", ctx, "admin@shop.test").
			Return(&User{ID: "u1", Email: "admin@shop.test", Password: hash, Role: "admin"}, nil)
		tokens.On("Generate", "u1", "admin@shop.test", "admin").Return("admin-token", nil)

		res, err := svc.Login(ctx, "Admin@Shop.test", "password123")
		require.NoError(t, err)
		assert.Equal(t, "admin-token", res.Token)
		assert.Equal(t, "admin", res.User.Role)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenIssuer))
		mockRepo.On("FindByEmail", ctx, "x@shop.test").Return(nil, ErrUserNotFound)

		_, err := svc.Login(ctx, "x@shop.test", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenIssuer))
		mockRepo.On("FindByEmail", ctx, "a@shop.test").Return(&User{ID: "u1", Password: hash}, nil)

		_, err := svc.Login(ctx, "a@shop.test", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DBError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockTokenIssuer))
		mockRepo.On("FindByEmail", ctx, "a@shop.test").Return(nil, errors.New("db down"))

		_, err := svc.Login(ctx, "a@shop.test", "password123")
		assert.EqualError(t, err, "db down")
	})
}
