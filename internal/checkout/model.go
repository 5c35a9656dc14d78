package checkout

import (
	"time"

	"storefront-be/internal/customer"
	"storefront-be/internal/governorate"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusDraft     OrderStatus = "draft"
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var transitions = map[OrderStatus][]OrderStatus{
	StatusDraft:     {StatusPending, StatusCancelled},
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order in status s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order snapshots the contact and shipping details given at submission;
// later edits to the customer record do not change it.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerID      string          `json:"customerId"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	GovernorateID   string          `json:"governorateId"`
	ShippingAddress string          `json:"shippingAddress"`
	Notes           *string         `json:"notes,omitempty"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	IdempotencyKey  string          `json:"-"`
	CartSession     string          `json:"-"`
	Items           []OrderItem     `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem freezes a cart line item at submission time.
type OrderItem struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"orderId"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
	Size         string          `json:"size,omitempty"`
	ColorOptions []string        `json:"colorOptions,omitempty"`
	Notes        string          `json:"notes,omitempty"`
}

type Quote struct {
	Governorate  *governorate.Governorate `json:"governorate"`
	TotalItems   int                      `json:"totalItems"`
	Subtotal     decimal.Decimal          `json:"subtotal"`
	ShippingCost decimal.Decimal          `json:"shippingCost"`
	Total        decimal.Decimal          `json:"total"`
}

type SubmitOrderInput struct {
	Session        string
	Customer       customer.CustomerInput
	GovernorateID  string
	Notes          *string
	IdempotencyKey string
}

type ListOrdersOptions struct {
	Status *OrderStatus
	Limit  int
	Page   int
}
