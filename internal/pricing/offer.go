package pricing

import (
	"github.com/shopspring/decimal"
)

// Offer is a quantity tier attached to a product. OfferPrice is the total
// price for the whole quantity being bought inside the band, not a unit price.
type Offer struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	MinQuantity int             `json:"minQuantity"`
	MaxQuantity *int            `json:"maxQuantity,omitempty"`
	OfferPrice  decimal.Decimal `json:"offerPrice"`
}

// Matches reports whether qty falls inside the offer band. A nil MaxQuantity
// means the band is unbounded.
func (o Offer) Matches(qty int) bool {
	if qty < o.MinQuantity {
		return false
	}
	return o.MaxQuantity == nil || qty <= *o.MaxQuantity
}

// SelectOffer picks the single tier that applies to qty. When bands overlap
// the one with the highest floor wins; equal floors keep the first listed.
func SelectOffer(offers []Offer, qty int) (Offer, bool) {
	var (
		best  Offer
		found bool
	)
	for _, o := range offers {
		if !o.Matches(qty) {
			continue
		}
		if !found || o.MinQuantity > best.MinQuantity {
			best = o
			found = true
		}
	}
	return best, found
}

// UnitPrice returns the effective per-unit price for qty units. The matched
// offer price is divided by qty itself since a band can be unbounded.
func UnitPrice(basePrice decimal.Decimal, offers []Offer, qty int) decimal.Decimal {
	if qty <= 0 {
		return basePrice
	}
	offer, ok := SelectOffer(offers, qty)
	if !ok {
		return basePrice
	}
	return offer.OfferPrice.Div(decimal.NewFromInt(int64(qty)))
}

// LineTotal is unitPrice × qty.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// RoundCurrency rounds to the currency's minor unit (piastres).
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
