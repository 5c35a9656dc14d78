package cart

import (
	"context"
	"errors"
	"strings"

	"storefront-be/internal/catalog"
	"storefront-be/internal/logger"
	"storefront-be/internal/packages"
	"storefront-be/internal/pricing"
	"storefront-be/internal/utils"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultCacheSize = 1024

type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error)
	ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error)
}

type PackageCatalog interface {
	GetPackage(ctx context.Context, id string) (*packages.Package, error)
	GetPackagePrice(ctx context.Context, id string) (decimal.Decimal, error)
}

type AddProductInput struct {
	ProductID    string   `json:"productId"`
	Quantity     int      `json:"quantity"`
	Size         string   `json:"size"`
	ColorOptions []string `json:"colorOptions"`
}

type AddPackageInput struct {
	PackageID    string   `json:"packageId"`
	Quantity     int      `json:"quantity"`
	ColorOptions []string `json:"colorOptions"`
}

// View is the cart as returned to the shopper.
type View struct {
	Session string     `json:"session"`
	Items   []LineItem `json:"items"`
	Totals
}

// Service maps cart sessions to hydrated stores. Each session's snapshot is
// read at most once while its store stays in the cache, so writes made by
// another process to the same snapshot are not seen until eviction.
type Service struct {
	snapshots SnapshotStore
	products  ProductCatalog
	packages  PackageCatalog
	prices    PriceSource
	stores    *lru.Cache[string, *Store]
	sfg       singleflight.Group
}

func NewService(snapshots SnapshotStore, products ProductCatalog, pkgs PackageCatalog, cacheSize int) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	stores, err := lru.New[string, *Store](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{
		snapshots: snapshots,
		products:  products,
		packages:  pkgs,
		prices:    catalogPrices{products: products, packages: pkgs},
		stores:    stores,
	}, nil
}

// Cart returns the store for session, loading its snapshot on first access.
func (s *Service) Cart(ctx context.Context, session string) (*Store, error) {
	if session == "" {
		return nil, ErrMissingSession
	}
	if st, ok := s.stores.Get(session); ok {
		return st, nil
	}

	v, err, _ := s.sfg.Do(session, func() (interface{}, error) {
		if st, ok := s.stores.Get(session); ok {
			return st, nil
		}
		st, err := LoadStore(ctx, session, s.snapshots, s.prices)
		if err != nil {
			return nil, err
		}
		s.stores.Add(session, st)
		return st, nil
	})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to hydrate cart",
			zap.String("cart", session),
			zap.Error(err),
		)
		return nil, err
	}
	return v.(*Store), nil
}

func (s *Service) View(ctx context.Context, session string) (View, error) {
	st, err := s.Cart(ctx, session)
	if err != nil {
		return View{}, err
	}
	items := st.Items()
	return View{Session: session, Items: items, Totals: ComputeTotals(items)}, nil
}

// AddProduct validates the shopper's selection against the catalog and adds
// the product priced by its quantity tiers at the added quantity.
func (s *Service) AddProduct(ctx context.Context, session string, input AddProductInput) (LineItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddProduct"),
		zap.String("product_id", input.ProductID),
	)

	if input.ProductID == "" {
		return LineItem{}, ErrMissingProductID
	}
	qty, err := normalizeQuantity(input.Quantity)
	if err != nil {
		return LineItem{}, err
	}

	st, err := s.Cart(ctx, session)
	if err != nil {
		return LineItem{}, err
	}

	p, err := s.products.GetProduct(ctx, input.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		return LineItem{}, ErrUnavailableProduct
	}
	if err != nil {
		log.Error("failed to load product", zap.Error(err))
		return LineItem{}, err
	}
	if !p.IsActive {
		return LineItem{}, ErrUnavailableProduct
	}

	size, colors, err := resolveOptions(p, input.Size, input.ColorOptions, qty)
	if err != nil {
		log.Warn("invalid selection", zap.Error(err))
		return LineItem{}, err
	}

	inCart := 0
	for _, it := range st.Items() {
		if it.ProductID == p.ID {
			inCart += it.Quantity
		}
	}
	if inCart+qty > p.StockQuantity {
		log.Warn("insufficient stock",
			zap.Int("requested", inCart+qty),
			zap.Int("stock", p.StockQuantity),
		)
		return LineItem{}, ErrInsufficientStock
	}

	base := p.Price
	return st.AddToCart(ctx, AddEntry{
		ProductID:         p.ID,
		Name:              p.Name,
		ImageURL:          utils.PtrString(p.ImageURL),
		UnitPrice:         pricing.UnitPrice(base, p.Offers, qty),
		OriginalBasePrice: &base,
		Quantity:          qty,
		Size:              size,
		ColorOptions:      colors,
	})
}

// AddPackage adds a bundle as one line item. ColorOptions is either empty or
// carries one color per piece of the bundle.
func (s *Service) AddPackage(ctx context.Context, session string, input AddPackageInput) (LineItem, error) {
	if input.PackageID == "" {
		return LineItem{}, ErrMissingProductID
	}
	qty, err := normalizeQuantity(input.Quantity)
	if err != nil {
		return LineItem{}, err
	}

	st, err := s.Cart(ctx, session)
	if err != nil {
		return LineItem{}, err
	}

	pkg, err := s.packages.GetPackage(ctx, input.PackageID)
	if errors.Is(err, packages.ErrPackageNotFound) {
		return LineItem{}, ErrUnavailablePackage
	}
	if err != nil {
		return LineItem{}, err
	}
	if !pkg.IsActive {
		return LineItem{}, ErrUnavailablePackage
	}

	colors := trimAll(input.ColorOptions)
	if len(colors) != 0 && len(colors) != pkg.PieceCount() {
		return LineItem{}, ErrColorCountMismatch
	}

	price := pkg.Price
	return st.AddToCart(ctx, AddEntry{
		ProductID:         pkg.ID,
		Name:              pkg.Name,
		ImageURL:          utils.PtrString(pkg.ImageURL),
		UnitPrice:         price,
		OriginalBasePrice: &price,
		Quantity:          qty,
		ColorOptions:      colors,
	})
}

func (s *Service) RemoveItem(ctx context.Context, session, productID, size string) error {
	st, err := s.Cart(ctx, session)
	if err != nil {
		return err
	}
	return st.RemoveFromCart(ctx, productID, size)
}

func (s *Service) UpdateQuantity(ctx context.Context, session, productID string, quantity int, size string) (QuantityUpdate, error) {
	st, err := s.Cart(ctx, session)
	if err != nil {
		return QuantityUpdate{}, err
	}
	return st.UpdateQuantity(ctx, productID, quantity, size)
}

func (s *Service) UpdateItemOptions(ctx context.Context, session, productID, size string, colors []string, newSize *string) error {
	st, err := s.Cart(ctx, session)
	if err != nil {
		return err
	}
	return st.UpdateItemOptions(ctx, productID, size, colors, newSize)
}

func (s *Service) ClearCart(ctx context.Context, session string) error {
	st, err := s.Cart(ctx, session)
	if err != nil {
		return err
	}
	return st.ClearCart(ctx)
}

func normalizeQuantity(q int) (int, error) {
	if q < 0 {
		return 0, ErrInvalidQuantity
	}
	if q == 0 {
		return 1, nil
	}
	return q, nil
}

// resolveOptions checks size and colors against the product and returns them
// in catalog spelling. A product with colors takes one color, or one color
// per unit.
func resolveOptions(p *catalog.Product, size string, colors []string, qty int) (string, []string, error) {
	size = strings.TrimSpace(size)
	switch {
	case len(p.Sizes) > 0 && size == "":
		return "", nil, ErrSizeRequired
	case size != "":
		name, ok := p.SizeName(size)
		if !ok {
			return "", nil, ErrUnknownSize
		}
		size = name
	}

	colors = trimAll(colors)
	if len(p.Colors) == 0 {
		if len(colors) > 0 {
			return "", nil, ErrUnknownColor
		}
		return size, nil, nil
	}
	if len(colors) == 0 {
		return "", nil, ErrColorRequired
	}
	if len(colors) != 1 && len(colors) != qty {
		return "", nil, ErrColorCountMismatch
	}

	out := make([]string, len(colors))
	for i, c := range colors {
		name, ok := p.ColorName(c)
		if !ok {
			return "", nil, ErrUnknownColor
		}
		out[i] = name
	}
	return size, out, nil
}

func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// catalogPrices resolves line item prices for UpdateQuantity. Package line
// items carry the package id, so an unknown product falls back to the
// package price with no tiers.
type catalogPrices struct {
	products ProductCatalog
	packages PackageCatalog
}

func (c catalogPrices) GetProductPrice(ctx context.Context, id string) (decimal.Decimal, error) {
	price, err := c.products.GetProductPrice(ctx, id)
	if errors.Is(err, catalog.ErrProductNotFound) && c.packages != nil {
		return c.packages.GetPackagePrice(ctx, id)
	}
	return price, err
}

func (c catalogPrices) ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error) {
	return c.products.ListOffers(ctx, productID)
}
