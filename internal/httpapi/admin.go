package httpapi

import (
	"net/http"
	"strings"

	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/checkout"
	"storefront-be/internal/governorate"
	"storefront-be/internal/packages"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type stockRequest struct {
	Quantity *int `json:"quantity"`
}

type orderStatusRequest struct {
	Status checkout.OrderStatus `json:"status"`
}

// -- products --

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.CreateProductInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Catalog.CreateProduct(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalog.UpdateProductInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ID = chi.URLParam(r, "id")

	p, err := h.svc.Catalog.UpdateProduct(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Catalog.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Quantity == nil {
		writeError(w, r, catalog.ErrInvalidStock)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Catalog.UpdateProductStock(r.Context(), id, *req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "stockQuantity": *req.Quantity})
}

func (h *Handler) addOffer(w http.ResponseWriter, r *http.Request) {
	var req catalog.NewOfferInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ProductID = chi.URLParam(r, "id")

	offer, err := h.svc.Catalog.AddOffer(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, offer)
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Catalog.DeleteOffer(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "offerID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addColor(w http.ResponseWriter, r *http.Request) {
	var req catalog.NewColorInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ProductID = chi.URLParam(r, "id")

	c, err := h.svc.Catalog.AddColor(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) deleteColor(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Catalog.DeleteColor(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "colorID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addSize(w http.ResponseWriter, r *http.Request) {
	var req catalog.NewSizeInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.ProductID = chi.URLParam(r, "id")

	s, err := h.svc.Catalog.AddSize(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) deleteSize(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Catalog.DeleteSize(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sizeID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- categories / packages --

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req category.NewCategoryInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.Categories.AddCategory(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Categories.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createPackage(w http.ResponseWriter, r *http.Request) {
	var req packages.CreatePackageInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := h.svc.Packages.AddPackage(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) deletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Packages.DeletePackage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- governorates --

func (h *Handler) createGovernorate(w http.ResponseWriter, r *http.Request) {
	var req governorate.GovernorateInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	g, err := h.svc.Governorates.CreateGovernorate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) updateGovernorate(w http.ResponseWriter, r *http.Request) {
	var req governorate.GovernorateInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	g, err := h.svc.Governorates.UpdateGovernorate(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) deleteGovernorate(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Governorates.DeleteGovernorate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- orders --

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, page := paging(r, 20)
	opts := checkout.ListOrdersOptions{Limit: limit, Page: page}
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		status := checkout.OrderStatus(strings.ToLower(v))
		opts.Status = &status
	}

	orders, total, err := h.svc.Checkout.ListOrders(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pageResponse[*checkout.Order]{Items: orders, Total: total, Page: page, Limit: limit})
}

func (h *Handler) listIncompleteOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Checkout.ListIncompleteOrders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*checkout.Order{}
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Checkout.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.svc.Checkout.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}
