package httpapi

import (
	"net/http"
	"strings"

	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/packages"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, page := paging(r, 20)
	opts := catalog.ListOptions{Limit: limit, Page: page}
	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		if !validUUID(v) {
			utils.WriteJSON(w, http.StatusOK, pageResponse[*catalog.Product]{Items: []*catalog.Product{}, Page: page, Limit: limit})
			return
		}
		opts.CategoryID = &v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("search")); v != "" {
		opts.Search = &v
	}

	products, total, err := h.svc.Catalog.ListProducts(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pageResponse[*catalog.Product]{Items: products, Total: total, Page: page, Limit: limit})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	limit, page := paging(r, 50)
	l32, p32 := int32(limit), int32(page)

	var filter *string
	if v := strings.TrimSpace(r.URL.Query().Get("search")); v != "" {
		filter = &v
	}

	cats, total, err := h.svc.Categories.GetCategories(r.Context(), filter, &l32, &p32)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pageResponse[*category.Category]{Items: cats, Total: total, Page: page, Limit: limit})
}

func (h *Handler) listPackages(w http.ResponseWriter, r *http.Request) {
	limit, page := paging(r, 20)
	q := r.URL.Query()

	var filter *packages.PackageFilterInput
	if v := strings.TrimSpace(q.Get("search")); v != "" {
		filter = &packages.PackageFilterInput{Name: &v}
	}

	var sort *packages.PackageSortInput
	if field := strings.ToUpper(q.Get("sort")); field != "" {
		dir := packages.SortDirectionAsc
		if strings.EqualFold(q.Get("direction"), "desc") {
			dir = packages.SortDirectionDesc
		}
		sort = &packages.PackageSortInput{Field: packages.PackageSortField(field), Direction: dir}
	}

	pkgs, total, err := h.svc.Packages.GetPackages(r.Context(), filter, sort, int32(limit), int32(page))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, pageResponse[*packages.Package]{Items: pkgs, Total: total, Page: page, Limit: limit})
}

func (h *Handler) getPackage(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Packages.GetPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) listGovernorates(w http.ResponseWriter, r *http.Request) {
	govs, err := h.svc.Governorates.ListGovernorates(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, govs)
}
