package catalog

import (
	"strings"
	"time"

	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	NameEn        *string         `json:"nameEn,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    *string         `json:"categoryId,omitempty"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
	IsActive      bool            `json:"isActive"`
	Colors        []Color         `json:"colors"`
	Sizes         []Size          `json:"sizes"`
	Offers        []pricing.Offer `json:"offers"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StockChange is the outcome of a stock decrement. Clamped is set when the
// ordered quantity exceeded Previous and the stock was floored at zero.
type StockChange struct {
	Previous  int
	Remaining int
	Clamped   bool
}

type Color struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	HexCode   *string `json:"hexCode,omitempty"`
}

type Size struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

// ColorName returns the catalog spelling of a color, matched
// case-insensitively so "red" selects "Red".
func (p Product) ColorName(name string) (string, bool) {
	for _, c := range p.Colors {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c.Name, true
		}
	}
	return "", false
}

func (p Product) SizeName(name string) (string, bool) {
	for _, s := range p.Sizes {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s.Name, true
		}
	}
	return "", false
}

func (p Product) HasColor(name string) bool {
	_, ok := p.ColorName(name)
	return ok
}

func (p Product) HasSize(name string) bool {
	_, ok := p.SizeName(name)
	return ok
}

type ListOptions struct {
	CategoryID *string
	Search     *string
	OnlyActive bool
	Limit      int
	Page       int
}

type CreateProductInput struct {
	Name          string          `json:"name"`
	NameEn        *string         `json:"nameEn"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    *string         `json:"categoryId"`
	ImageURL      *string         `json:"imageUrl"`
	IsActive      *bool           `json:"isActive"`
}

type UpdateProductInput struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name"`
	NameEn        *string          `json:"nameEn"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity"`
	CategoryID    *string          `json:"categoryId"`
	ImageURL      *string          `json:"imageUrl"`
	IsActive      *bool            `json:"isActive"`
}

func (in UpdateProductInput) hasAnyField() bool {
	return in.Name != nil ||
		in.NameEn != nil ||
		in.Description != nil ||
		in.Price != nil ||
		in.StockQuantity != nil ||
		in.CategoryID != nil ||
		in.ImageURL != nil ||
		in.IsActive != nil
}

type NewOfferInput struct {
	ProductID   string          `json:"-"`
	MinQuantity int             `json:"minQuantity"`
	MaxQuantity *int            `json:"maxQuantity"`
	OfferPrice  decimal.Decimal `json:"offerPrice"`
}

type NewColorInput struct {
	ProductID string  `json:"-"`
	Name      string  `json:"name"`
	HexCode   *string `json:"hexCode"`
}

type NewSizeInput struct {
	ProductID string `json:"-"`
	Name      string `json:"name"`
}
