package cart

import (
	"encoding/json"

	"storefront-be/internal/pricing"

	"github.com/shopspring/decimal"
)

// LineItem is one distinct purchasable configuration in the cart. Name and
// ImageURL are captured when the item is added and are not kept in sync with
// the catalog afterwards.
type LineItem struct {
	ProductID         string          `json:"productId"`
	Name              string          `json:"name"`
	ImageURL          string          `json:"imageUrl,omitempty"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	OriginalBasePrice decimal.Decimal `json:"originalBasePrice"`
	Quantity          int             `json:"quantity"`
	Size              string          `json:"size,omitempty"`
	ColorOptions      []string        `json:"colorOptions,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// LineTotal is UnitPrice × Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return pricing.LineTotal(li.UnitPrice, li.Quantity)
}

// Key identifies the configuration of a line item. Two additions with the
// same key merge into one line item.
func (li LineItem) Key() string {
	return itemKey(li.ProductID, li.Size, li.ColorOptions)
}

func (li LineItem) clone() LineItem {
	if li.ColorOptions != nil {
		li.ColorOptions = append([]string(nil), li.ColorOptions...)
	}
	return li
}

// AddEntry is the payload of an add-to-cart call. A zero Quantity means one
// unit. OriginalBasePrice defaults to UnitPrice when nil.
type AddEntry struct {
	ProductID         string
	Name              string
	ImageURL          string
	UnitPrice         decimal.Decimal
	OriginalBasePrice *decimal.Decimal
	Quantity          int
	Size              string
	ColorOptions      []string
}

// Totals are derived from the current line items only.
type Totals struct {
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// ComputeTotals sums quantities and line totals. TotalPrice is rounded to
// currency precision since tier unit prices may not divide evenly.
func ComputeTotals(items []LineItem) Totals {
	t := Totals{TotalPrice: decimal.Zero}
	for _, it := range items {
		t.TotalItems += it.Quantity
		t.TotalPrice = t.TotalPrice.Add(it.LineTotal())
	}
	t.TotalPrice = pricing.RoundCurrency(t.TotalPrice)
	return t
}

func itemKey(productID, size string, colors []string) string {
	return productID + "\x00" + size + "\x00" + serializeColors(colors)
}

func serializeColors(colors []string) string {
	if len(colors) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(colors)
	return string(b)
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}
