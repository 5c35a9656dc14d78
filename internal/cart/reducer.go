package cart

import "github.com/shopspring/decimal"

// Action is a cart mutation. Reduce applies it to a copy of the current
// line items and never touches the input slice.
type Action interface {
	apply(items []LineItem) []LineItem
}

// AddItem merges into the line item with the same configuration or appends
// a new one.
type AddItem struct {
	Entry AddEntry
}

// RemoveItems drops every line item of ProductID with exactly Size.
type RemoveItems struct {
	ProductID string
	Size      string
}

// SetQuantity sets the quantity of every line item matching
// (ProductID, Size). UnitPrice, when set, replaces the current unit price.
// Quantity <= 0 removes the matches.
type SetQuantity struct {
	ProductID string
	Size      string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// SetOptions replaces colors and/or size on every line item matching
// (ProductID, Size) and regenerates notes.
type SetOptions struct {
	ProductID    string
	Size         string
	ColorOptions []string
	NewSize      *string
}

// Clear empties the cart.
type Clear struct{}

// Reduce returns the line items that result from applying a to items.
func Reduce(items []LineItem, a Action) []LineItem {
	return a.apply(cloneItems(items))
}

func (a AddItem) apply(items []LineItem) []LineItem {
	e := a.Entry
	qty := e.Quantity
	if qty == 0 {
		qty = 1
	}

	key := itemKey(e.ProductID, e.Size, e.ColorOptions)
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity += qty
			return items
		}
	}

	base := e.UnitPrice
	if e.OriginalBasePrice != nil {
		base = *e.OriginalBasePrice
	}

	var colors []string
	if len(e.ColorOptions) > 0 {
		colors = append([]string(nil), e.ColorOptions...)
	}

	return append(items, LineItem{
		ProductID:         e.ProductID,
		Name:              e.Name,
		ImageURL:          e.ImageURL,
		UnitPrice:         e.UnitPrice,
		OriginalBasePrice: base,
		Quantity:          qty,
		Size:              e.Size,
		ColorOptions:      colors,
		Notes:             BuildNotes(colors, e.Size),
	})
}

func (a RemoveItems) apply(items []LineItem) []LineItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID == a.ProductID && it.Size == a.Size {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (a SetQuantity) apply(items []LineItem) []LineItem {
	if a.Quantity <= 0 {
		return RemoveItems{ProductID: a.ProductID, Size: a.Size}.apply(items)
	}
	for i := range items {
		if items[i].ProductID != a.ProductID || items[i].Size != a.Size {
			continue
		}
		items[i].Quantity = a.Quantity
		if a.UnitPrice != nil {
			items[i].UnitPrice = *a.UnitPrice
		}
	}
	return items
}

func (a SetOptions) apply(items []LineItem) []LineItem {
	changed := false
	for i := range items {
		if items[i].ProductID != a.ProductID || items[i].Size != a.Size {
			continue
		}
		if a.ColorOptions != nil {
			items[i].ColorOptions = append([]string(nil), a.ColorOptions...)
			if len(items[i].ColorOptions) == 0 {
				items[i].ColorOptions = nil
			}
		}
		if a.NewSize != nil {
			items[i].Size = *a.NewSize
		}
		items[i].Notes = BuildNotes(items[i].ColorOptions, items[i].Size)
		changed = true
	}
	if !changed {
		return items
	}
	return mergeDuplicates(items)
}

func (Clear) apply([]LineItem) []LineItem {
	return []LineItem{}
}

// mergeDuplicates folds line items that share a configuration into the
// first occurrence, keeping its prices.
func mergeDuplicates(items []LineItem) []LineItem {
	index := make(map[string]int, len(items))
	out := items[:0]
	for _, it := range items {
		if pos, ok := index[it.Key()]; ok {
			out[pos].Quantity += it.Quantity
			continue
		}
		index[it.Key()] = len(out)
		out = append(out, it)
	}
	return out
}
