package packages

import (
	"time"

	"github.com/shopspring/decimal"
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "ASC"
	SortDirectionDesc SortDirection = "DESC"
)

type PackageFilterInput struct {
	Name *string
}

type PackageSortField string

const (
	PackageSortFieldName      PackageSortField = "NAME"
	PackageSortFieldPrice     PackageSortField = "PRICE"
	PackageSortFieldCreatedAt PackageSortField = "CREATED_AT"
)

type PackageSortInput struct {
	Field     PackageSortField
	Direction SortDirection
}

// Package is a fixed bundle of catalog products sold at one price. In the
// cart it is a single line item whose color options carry one color per
// piece.
type Package struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	IsActive    bool            `json:"isActive"`
	Items       []*PackageItem  `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type PackageItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// PieceCount is the number of physical pieces in the bundle.
func (p Package) PieceCount() int {
	n := 0
	for _, it := range p.Items {
		n += it.Quantity
	}
	return n
}

type CreatePackageInput struct {
	Name        string                   `json:"name"`
	Description *string                  `json:"description"`
	Price       decimal.Decimal          `json:"price"`
	ImageURL    *string                  `json:"imageUrl"`
	Items       []CreatePackageItemInput `json:"items"`
}

type CreatePackageItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
