package httpapi

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/checkout"
	"storefront-be/internal/pricing"
	"storefront-be/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// ---------- MOCKS ----------

type MockCart struct {
	mock.Mock
}

func (m *MockCart) View(ctx context.Context, session string) (cart.View, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(cart.View), args.Error(1)
}

func (m *MockCart) AddProduct(ctx context.Context, session string, input cart.AddProductInput) (cart.LineItem, error) {
	args := m.Called(ctx, session, input)
	return args.Get(0).(cart.LineItem), args.Error(1)
}

func (m *MockCart) AddPackage(ctx context.Context, session string, input cart.AddPackageInput) (cart.LineItem, error) {
	args := m.Called(ctx, session, input)
	return args.Get(0).(cart.LineItem), args.Error(1)
}

func (m *MockCart) RemoveItem(ctx context.Context, session, productID, size string) error {
	return m.Called(ctx, session, productID, size).Error(0)
}

func (m *MockCart) UpdateQuantity(ctx context.Context, session, productID string, quantity int, size string) (cart.QuantityUpdate, error) {
	args := m.Called(ctx, session, productID, quantity, size)
	return args.Get(0).(cart.QuantityUpdate), args.Error(1)
}

func (m *MockCart) UpdateItemOptions(ctx context.Context, session, productID, size string, colors []string, newSize *string) error {
	return m.Called(ctx, session, productID, size, colors, newSize).Error(0)
}

func (m *MockCart) ClearCart(ctx context.Context, session string) error {
	return m.Called(ctx, session).Error(0)
}

type MockCheckout struct {
	mock.Mock
}

func (m *MockCheckout) Quote(ctx context.Context, session, governorateID string) (*checkout.Quote, error) {
	args := m.Called(ctx, session, governorateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Quote), args.Error(1)
}

func (m *MockCheckout) SubmitOrder(ctx context.Context, input checkout.SubmitOrderInput) (*checkout.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Order), args.Error(1)
}

func (m *MockCheckout) ListOrders(ctx context.Context, opts checkout.ListOrdersOptions) ([]*checkout.Order, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*checkout.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockCheckout) GetOrder(ctx context.Context, id string) (*checkout.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Order), args.Error(1)
}

func (m *MockCheckout) UpdateOrderStatus(ctx context.Context, id string, status checkout.OrderStatus) (*checkout.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Order), args.Error(1)
}

func (m *MockCheckout) ListIncompleteOrders(ctx context.Context) ([]*checkout.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*checkout.Order), args.Error(1)
}

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) Register(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

func (m *MockUsers) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.AuthResult), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListProducts(ctx context.Context, opts catalog.ListOptions) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalog) CreateProduct(ctx context.Context, input catalog.CreateProductInput) (*catalog.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalog) UpdateProduct(ctx context.Context, input catalog.UpdateProductInput) (*catalog.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalog) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalog) GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCatalog) ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Offer), args.Error(1)
}

func (m *MockCatalog) DecrementStock(ctx context.Context, id string, quantity int) (catalog.StockChange, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(catalog.StockChange), args.Error(1)
}

func (m *MockCatalog) UpdateProductStock(ctx context.Context, id string, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

func (m *MockCatalog) AddOffer(ctx context.Context, input catalog.NewOfferInput) (*pricing.Offer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Offer), args.Error(1)
}

func (m *MockCatalog) DeleteOffer(ctx context.Context, productID, offerID string) error {
	return m.Called(ctx, productID, offerID).Error(0)
}

func (m *MockCatalog) AddColor(ctx context.Context, input catalog.NewColorInput) (*catalog.Color, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Color), args.Error(1)
}

func (m *MockCatalog) DeleteColor(ctx context.Context, productID, colorID string) error {
	return m.Called(ctx, productID, colorID).Error(0)
}

func (m *MockCatalog) AddSize(ctx context.Context, input catalog.NewSizeInput) (*catalog.Size, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Size), args.Error(1)
}

func (m *MockCatalog) DeleteSize(ctx context.Context, productID, sizeID string) error {
	return m.Called(ctx, productID, sizeID).Error(0)
}
