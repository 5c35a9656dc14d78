package httpapi

import (
	"net/http"

	"storefront-be/internal/checkout"
	"storefront-be/internal/customer"
	"storefront-be/internal/governorate"
	"storefront-be/internal/middleware"
	"storefront-be/internal/utils"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type quoteRequest struct {
	GovernorateID string `json:"governorateId"`
}

type submitOrderRequest struct {
	Customer      customer.CustomerInput `json:"customer"`
	GovernorateID string                 `json:"governorateId"`
	Notes         *string                `json:"notes"`
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if malformedID(req.GovernorateID) {
		writeError(w, r, governorate.ErrGovernorateNotFound)
		return
	}

	q, err := h.svc.Checkout.Quote(r.Context(), middleware.CartSessionFrom(r.Context()), req.GovernorateID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, q)
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if malformedID(req.GovernorateID) {
		writeError(w, r, governorate.ErrGovernorateNotFound)
		return
	}

	order, err := h.svc.Checkout.SubmitOrder(r.Context(), checkout.SubmitOrderInput{
		Session:        middleware.CartSessionFrom(r.Context()),
		Customer:       req.Customer,
		GovernorateID:  req.GovernorateID,
		Notes:          req.Notes,
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, order)
}
