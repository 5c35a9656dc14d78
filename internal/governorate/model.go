package governorate

import "github.com/shopspring/decimal"

// Governorate is a shipping zone with a flat shipping cost.
type Governorate struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	NameEn       *string         `json:"nameEn,omitempty"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	IsActive     bool            `json:"isActive"`
}

type GovernorateInput struct {
	Name         string          `json:"name"`
	NameEn       *string         `json:"nameEn"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	IsActive     *bool           `json:"isActive"`
}
