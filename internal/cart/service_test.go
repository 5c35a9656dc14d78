package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"storefront-be/internal/catalog"
	"storefront-be/internal/packages"
	"storefront-be/internal/pricing"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductCatalog) GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockProductCatalog) ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Offer), args.Error(1)
}

type MockPackageCatalog struct {
	mock.Mock
}

func (m *MockPackageCatalog) GetPackage(ctx context.Context, id string) (*packages.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packages.Package), args.Error(1)
}

func (m *MockPackageCatalog) GetPackagePrice(ctx context.Context, id string) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// countingSnapshots counts loads to check hydration happens once per session.
type countingSnapshots struct {
	*MemorySnapshotStore
	mu    sync.Mutex
	loads int
}

func (c *countingSnapshots) Load(ctx context.Context, key string) ([]LineItem, error) {
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	return c.MemorySnapshotStore.Load(ctx, key)
}

func dress() *catalog.Product {
	return &catalog.Product{
		ID:            "p1",
		Name:          "Dress",
		Price:         decimal.NewFromInt(150),
		StockQuantity: 10,
		ImageURL:      utils.StrPtr("dress.jpg"),
		IsActive:      true,
		Colors:        []catalog.Color{{Name: "Red"}, {Name: "Blue"}},
		Sizes:         []catalog.Size{{Name: "L"}, {Name: "M"}},
		Offers:        tierOffers(),
	}
}

func newTestService(t *testing.T) (*Service, *MockProductCatalog, *MockPackageCatalog) {
	t.Helper()
	products := new(MockProductCatalog)
	pkgs := new(MockPackageCatalog)
	svc, err := NewService(NewMemorySnapshotStore(), products, pkgs, 8)
	require.NoError(t, err)
	return svc, products, pkgs
}

func TestService_Cart(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing session", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Cart(ctx, "")
		assert.ErrorIs(t, err, ErrMissingSession)
	})

	t.Run("Hydrates once", func(t *testing.T) {
		snaps := &countingSnapshots{MemorySnapshotStore: NewMemorySnapshotStore()}
		require.NoError(t, snaps.Save(ctx, "s1", Reduce(nil, AddItem{Entry: entry("p1", 2, "")})))

		svc, err := NewService(snaps, new(MockProductCatalog), new(MockPackageCatalog), 0)
		require.NoError(t, err)

		var wg sync.WaitGroup
		stores := make([]*Store, 20)
		for i := range stores {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				st, err := svc.Cart(ctx, "s1")
				assert.NoError(t, err)
				stores[i] = st
			}(i)
		}
		wg.Wait()

		for _, st := range stores {
			assert.Same(t, stores[0], st)
		}
		assert.Equal(t, 1, snaps.loads)
		assert.Equal(t, 2, stores[0].TotalItems())
	})
}

func TestService_AddProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Priced at the added quantity", func(t *testing.T) {
		svc, products, _ := newTestService(t)
		products.On("GetProduct", ctx, "p1").Return(dress(), nil)

		li, err := svc.AddProduct(ctx, "s1", AddProductInput{
			ProductID:    "p1",
			Quantity:     5,
			Size:         "l",
			ColorOptions: []string{" red "},
		})
		require.NoError(t, err)
		assert.True(t, li.UnitPrice.Equal(decimal.NewFromInt(96)))
		assert.True(t, li.OriginalBasePrice.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, "L", li.Size)
		assert.Equal(t, []string{"Red"}, li.ColorOptions)
		assert.Equal(t, "Colors: Red - Size: L", li.Notes)
		assert.Equal(t, "dress.jpg", li.ImageURL)
	})

	t.Run("Per-unit colors", func(t *testing.T) {
		svc, products, _ := newTestService(t)
		products.On("GetProduct", ctx, "p1").Return(dress(), nil)

		li, err := svc.AddProduct(ctx, "s1", AddProductInput{
			ProductID:    "p1",
			Quantity:     3,
			Size:         "M",
			ColorOptions: []string{"Red", "Red", "Blue"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Colors: Red (2), Blue - Size: M", li.Notes)
	})

	t.Run("Selection errors", func(t *testing.T) {
		svc, products, _ := newTestService(t)
		products.On("GetProduct", ctx, "p1").Return(dress(), nil)

		cases := []struct {
			name  string
			input AddProductInput
			err   error
		}{
			{name: "No size", input: AddProductInput{ProductID: "p1", ColorOptions: []string{"Red"}}, err: ErrSizeRequired},
			{name: "Unknown size", input: AddProductInput{ProductID: "p1", Size: "XXL", ColorOptions: []string{"Red"}}, err: ErrUnknownSize},
			{name: "No color", input: AddProductInput{ProductID: "p1", Size: "L"}, err: ErrColorRequired},
			{name: "Unknown color", input: AddProductInput{ProductID: "p1", Size: "L", ColorOptions: []string{"Green"}}, err: ErrUnknownColor},
			{name: "Color count", input: AddProductInput{ProductID: "p1", Quantity: 3, Size: "L", ColorOptions: []string{"Red", "Blue"}}, err: ErrColorCountMismatch},
			{name: "Too many", input: AddProductInput{ProductID: "p1", Quantity: 11, Size: "L", ColorOptions: []string{"Red"}}, err: ErrInsufficientStock},
			{name: "Negative", input: AddProductInput{ProductID: "p1", Quantity: -1}, err: ErrInvalidQuantity},
			{name: "No product", input: AddProductInput{}, err: ErrMissingProductID},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.AddProduct(ctx, "s1", tc.input)
				assert.ErrorIs(t, err, tc.err)
			})
		}

		view, err := svc.View(ctx, "s1")
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})

	t.Run("Stock counts what is already in the cart", func(t *testing.T) {
		svc, products, _ := newTestService(t)
		products.On("GetProduct", ctx, "p1").Return(dress(), nil)

		_, err := svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "p1", Quantity: 8, Size: "L", ColorOptions: []string{"Red"}})
		require.NoError(t, err)

		_, err = svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "p1", Quantity: 3, Size: "M", ColorOptions: []string{"Blue"}})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Plain product", func(t *testing.T) {
		svc, products, _ := newTestService(t)
		products.On("GetProduct", ctx, "p2").Return(&catalog.Product{
			ID: "p2", Name: "Scarf", Price: decimal.NewFromInt(40), StockQuantity: 5, IsActive: true,
		}, nil)

		li, err := svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "p2"})
		require.NoError(t, err)
		assert.Equal(t, 1, li.Quantity)
		assert.Empty(t, li.Notes)

		_, err = svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "p2", ColorOptions: []string{"Red"}})
		assert.ErrorIs(t, err, ErrUnknownColor)
	})

	t.Run("Unavailable", func(t *testing.T) {
		svc, products, _ := newTestService(t)
		inactive := dress()
		inactive.IsActive = false
		products.On("GetProduct", ctx, "p1").Return(inactive, nil)
		products.On("GetProduct", ctx, "gone").Return(nil, catalog.ErrProductNotFound)
		products.On("GetProduct", ctx, "boom").Return(nil, errors.New("db error"))

		_, err := svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "p1"})
		assert.ErrorIs(t, err, ErrUnavailableProduct)

		_, err = svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "gone"})
		assert.ErrorIs(t, err, ErrUnavailableProduct)

		_, err = svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "boom"})
		assert.EqualError(t, err, "db error")
	})
}

func TestService_AddPackage(t *testing.T) {
	ctx := context.Background()
	bundle := &packages.Package{
		ID:       "pkg1",
		Name:     "Summer set",
		Price:    decimal.NewFromInt(450),
		IsActive: true,
		Items:    []*packages.PackageItem{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}},
	}

	t.Run("One color per piece", func(t *testing.T) {
		svc, _, pkgs := newTestService(t)
		pkgs.On("GetPackage", ctx, "pkg1").Return(bundle, nil)

		li, err := svc.AddPackage(ctx, "s1", AddPackageInput{PackageID: "pkg1", ColorOptions: []string{"Red", "Red", "Blue"}})
		require.NoError(t, err)
		assert.Equal(t, "pkg1", li.ProductID)
		assert.True(t, li.UnitPrice.Equal(decimal.NewFromInt(450)))
		assert.Equal(t, "Colors: Red (2), Blue", li.Notes)
	})

	t.Run("Without colors", func(t *testing.T) {
		svc, _, pkgs := newTestService(t)
		pkgs.On("GetPackage", ctx, "pkg1").Return(bundle, nil)

		li, err := svc.AddPackage(ctx, "s1", AddPackageInput{PackageID: "pkg1", Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, li.Quantity)
	})

	t.Run("Color count mismatch", func(t *testing.T) {
		svc, _, pkgs := newTestService(t)
		pkgs.On("GetPackage", ctx, "pkg1").Return(bundle, nil)

		_, err := svc.AddPackage(ctx, "s1", AddPackageInput{PackageID: "pkg1", ColorOptions: []string{"Red"}})
		assert.ErrorIs(t, err, ErrColorCountMismatch)
	})

	t.Run("Unavailable", func(t *testing.T) {
		svc, _, pkgs := newTestService(t)
		pkgs.On("GetPackage", ctx, "gone").Return(nil, packages.ErrPackageNotFound)

		_, err := svc.AddPackage(ctx, "s1", AddPackageInput{PackageID: "gone"})
		assert.ErrorIs(t, err, ErrUnavailablePackage)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Product reprices from tiers", func(t *testing.T) {
		svc, products, _ := newTestService(t)
		products.On("GetProduct", ctx, "p1").Return(dress(), nil)
		products.On("GetProductPrice", ctx, "p1").Return(decimal.NewFromInt(150), nil)
		products.On("ListOffers", ctx, "p1").Return(tierOffers(), nil)

		_, err := svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "p1", Size: "L", ColorOptions: []string{"Red"}})
		require.NoError(t, err)

		res, err := svc.UpdateQuantity(ctx, "s1", "p1", 5, "L")
		require.NoError(t, err)
		assert.True(t, res.Repriced)

		view, err := svc.View(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 5, view.TotalItems)
		assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(480)))
	})

	t.Run("Package falls back to package price", func(t *testing.T) {
		svc, products, pkgs := newTestService(t)
		pkgs.On("GetPackage", ctx, "pkg1").Return(&packages.Package{
			ID: "pkg1", Name: "Set", Price: decimal.NewFromInt(200), IsActive: true,
		}, nil)
		products.On("GetProductPrice", ctx, "pkg1").Return(decimal.Zero, catalog.ErrProductNotFound)
		pkgs.On("GetPackagePrice", ctx, "pkg1").Return(decimal.NewFromInt(200), nil)
		products.On("ListOffers", ctx, "pkg1").Return([]pricing.Offer{}, nil)

		_, err := svc.AddPackage(ctx, "s1", AddPackageInput{PackageID: "pkg1"})
		require.NoError(t, err)

		res, err := svc.UpdateQuantity(ctx, "s1", "pkg1", 3, "")
		require.NoError(t, err)
		assert.True(t, res.Repriced)

		view, _ := svc.View(ctx, "s1")
		assert.True(t, view.TotalPrice.Equal(decimal.NewFromInt(600)))
	})
}

func TestService_Passthrough(t *testing.T) {
	ctx := context.Background()
	svc, products, _ := newTestService(t)
	products.On("GetProduct", ctx, "p1").Return(dress(), nil)

	_, err := svc.AddProduct(ctx, "s1", AddProductInput{ProductID: "p1", Quantity: 2, Size: "L", ColorOptions: []string{"Red"}})
	require.NoError(t, err)

	newSize := "M"
	require.NoError(t, svc.UpdateItemOptions(ctx, "s1", "p1", "L", []string{"Blue"}, &newSize))
	view, _ := svc.View(ctx, "s1")
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Colors: Blue - Size: M", view.Items[0].Notes)

	require.NoError(t, svc.RemoveItem(ctx, "s1", "p1", "M"))
	view, _ = svc.View(ctx, "s1")
	assert.Empty(t, view.Items)

	require.NoError(t, svc.ClearCart(ctx, "s1"))
	require.NoError(t, svc.ClearCart(ctx, "s1"))

	assert.ErrorIs(t, svc.ClearCart(ctx, ""), ErrMissingSession)
}
