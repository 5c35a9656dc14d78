package httpapi

import (
	"net/http"
	"strings"

	"storefront-be/internal/cart"
	"storefront-be/internal/middleware"
	"storefront-be/internal/utils"
)

type updateQuantityRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type updateOptionsRequest struct {
	ProductID    string   `json:"productId"`
	Size         string   `json:"size"`
	ColorOptions []string `json:"colorOptions"`
	NewSize      *string  `json:"newSize"`
}

type cartResponse struct {
	cart.View
	Item     *cart.LineItem `json:"item,omitempty"`
	Repriced *bool          `json:"repriced,omitempty"`
}

// respondCart writes the session's cart after a mutation.
func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, status int, item *cart.LineItem, repriced *bool) {
	view, err := h.svc.Cart.View(r.Context(), middleware.CartSessionFrom(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, status, cartResponse{View: view, Item: item, Repriced: repriced})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w, r, http.StatusOK, nil, nil)
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var req cart.AddProductInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if malformedID(req.ProductID) {
		writeError(w, r, cart.ErrUnavailableProduct)
		return
	}

	item, err := h.svc.Cart.AddProduct(r.Context(), middleware.CartSessionFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r, http.StatusCreated, &item, nil)
}

func (h *Handler) addPackage(w http.ResponseWriter, r *http.Request) {
	var req cart.AddPackageInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if malformedID(req.PackageID) {
		writeError(w, r, cart.ErrUnavailablePackage)
		return
	}

	item, err := h.svc.Cart.AddPackage(r.Context(), middleware.CartSessionFrom(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r, http.StatusCreated, &item, nil)
}

// removeItem takes productId and size from the query string.
func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	productID := strings.TrimSpace(q.Get("productId"))
	if productID == "" {
		writeError(w, r, cart.ErrMissingProductID)
		return
	}

	if err := h.svc.Cart.RemoveItem(r.Context(), middleware.CartSessionFrom(r.Context()), productID, q.Get("size")); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, nil, nil)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ProductID == "" {
		writeError(w, r, cart.ErrMissingProductID)
		return
	}

	res, err := h.svc.Cart.UpdateQuantity(r.Context(), middleware.CartSessionFrom(r.Context()), req.ProductID, req.Quantity, req.Size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, nil, &res.Repriced)
}

func (h *Handler) updateOptions(w http.ResponseWriter, r *http.Request) {
	var req updateOptionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.ProductID == "" {
		writeError(w, r, cart.ErrMissingProductID)
		return
	}

	err := h.svc.Cart.UpdateItemOptions(r.Context(), middleware.CartSessionFrom(r.Context()),
		req.ProductID, req.Size, req.ColorOptions, req.NewSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, nil, nil)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cart.ClearCart(r.Context(), middleware.CartSessionFrom(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	h.respondCart(w, r, http.StatusOK, nil, nil)
}
