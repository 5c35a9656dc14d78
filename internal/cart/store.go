package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceSource is the catalog boundary used to reprice a line item when its
// quantity changes.
type PriceSource interface {
	GetProductPrice(ctx context.Context, productID string) (decimal.Decimal, error)
	ListOffers(ctx context.Context, productID string) ([]pricing.Offer, error)
}

// QuantityUpdate reports how UpdateQuantity priced the line item. When the
// catalog lookup failed, Repriced is false and PriceErr holds the cause; the
// quantity was still applied at the previous unit price.
type QuantityUpdate struct {
	Repriced bool
	PriceErr error
}

// Store owns the line items of one cart. Every mutation is written to the
// snapshot store before the in-memory state changes, so a failed write
// leaves the cart as it was.
type Store struct {
	mu        sync.Mutex
	key       string
	items     []LineItem
	snapshots SnapshotStore
	prices    PriceSource
}

func NewStore(key string, items []LineItem, snapshots SnapshotStore, prices PriceSource) *Store {
	if items == nil {
		items = []LineItem{}
	}
	return &Store{
		key:       key,
		items:     cloneItems(items),
		snapshots: snapshots,
		prices:    prices,
	}
}

// LoadStore reads the durable snapshot for key once and builds a Store from
// it. A missing snapshot yields an empty cart.
func LoadStore(ctx context.Context, key string, snapshots SnapshotStore, prices PriceSource) (*Store, error) {
	items, err := snapshots.Load(ctx, key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return NewStore(key, nil, snapshots, prices), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedLoadCart, err)
	}
	return NewStore(key, items, snapshots, prices), nil
}

func (s *Store) Key() string { return s.key }

// Items returns a copy of the current line items.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.items)
}

// TotalItems is the sum of quantities.
func (s *Store) TotalItems() int { return s.Totals().TotalItems }

// TotalPrice is the sum of unitPrice × quantity.
func (s *Store) TotalPrice() decimal.Decimal { return s.Totals().TotalPrice }

// AddToCart merges entry into the matching line item or appends a new one
// and returns the resulting line item.
func (s *Store) AddToCart(ctx context.Context, entry AddEntry) (LineItem, error) {
	if entry.ProductID == "" {
		return LineItem{}, ErrMissingProductID
	}
	if entry.Quantity < 0 {
		return LineItem{}, ErrInvalidQuantity
	}

	items, err := s.dispatch(ctx, AddItem{Entry: entry})
	if err != nil {
		return LineItem{}, err
	}

	key := itemKey(entry.ProductID, entry.Size, entry.ColorOptions)
	for _, it := range items {
		if it.Key() == key {
			logger.FromCtx(ctx).Info("item added to cart",
				zap.String("cart", s.key),
				zap.String("product_id", it.ProductID),
				zap.Int("quantity", it.Quantity),
			)
			return it, nil
		}
	}
	return LineItem{}, nil
}

// RemoveFromCart drops every line item of productID with exactly size.
// Nothing matching is not an error.
func (s *Store) RemoveFromCart(ctx context.Context, productID, size string) error {
	_, err := s.dispatch(ctx, RemoveItems{ProductID: productID, Size: size})
	return err
}

// UpdateQuantity sets the quantity of the matching line items and reprices
// them from the quantity tiers. quantity <= 0 removes them.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, size string) (QuantityUpdate, error) {
	if quantity <= 0 {
		return QuantityUpdate{}, s.RemoveFromCart(ctx, productID, size)
	}
	if !s.has(productID, size) {
		return QuantityUpdate{}, nil
	}

	action := SetQuantity{ProductID: productID, Size: size, Quantity: quantity}

	price, priceErr := s.resolvePrice(ctx, productID, quantity)
	if priceErr != nil {
		metrics.PriceFallbacks.Inc()
		logger.FromCtx(ctx).Warn("tier price lookup failed, keeping previous unit price",
			zap.String("cart", s.key),
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(priceErr),
		)
	} else {
		action.UnitPrice = &price
	}

	if _, err := s.dispatch(ctx, action); err != nil {
		return QuantityUpdate{}, err
	}
	return QuantityUpdate{Repriced: action.UnitPrice != nil, PriceErr: priceErr}, nil
}

// UpdateItemOptions replaces colors and/or size of the matching line items.
// A nil colors slice leaves colors unchanged; an empty one clears them.
func (s *Store) UpdateItemOptions(ctx context.Context, productID, size string, colors []string, newSize *string) error {
	_, err := s.dispatch(ctx, SetOptions{
		ProductID:    productID,
		Size:         size,
		ColorOptions: colors,
		NewSize:      newSize,
	})
	return err
}

// ClearCart empties the cart and removes its durable snapshot.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.snapshots.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	s.items = Reduce(s.items, Clear{})
	metrics.CartMutations.Inc()
	return nil
}

func (s *Store) dispatch(ctx context.Context, a Action) ([]LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Reduce(s.items, a)
	if err := s.snapshots.Save(ctx, s.key, next); err != nil {
		logger.FromCtx(ctx).Error("failed to persist cart snapshot",
			zap.String("cart", s.key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	s.items = next
	metrics.CartMutations.Inc()
	return cloneItems(next), nil
}

func (s *Store) has(productID, size string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ProductID == productID && it.Size == size {
			return true
		}
	}
	return false
}

func (s *Store) resolvePrice(ctx context.Context, productID string, quantity int) (decimal.Decimal, error) {
	if s.prices == nil {
		return decimal.Zero, ErrMissingPriceSource
	}
	base, err := s.prices.GetProductPrice(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	offers, err := s.prices.ListOffers(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.UnitPrice(base, offers, quantity), nil
}
