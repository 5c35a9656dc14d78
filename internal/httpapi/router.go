package httpapi

import (
	"context"
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/checkout"
	"storefront-be/internal/governorate"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/packages"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// CartService is the session-scoped cart API served under /api/cart.
type CartService interface {
	View(ctx context.Context, session string) (cart.View, error)
	AddProduct(ctx context.Context, session string, input cart.AddProductInput) (cart.LineItem, error)
	AddPackage(ctx context.Context, session string, input cart.AddPackageInput) (cart.LineItem, error)
	RemoveItem(ctx context.Context, session, productID, size string) error
	UpdateQuantity(ctx context.Context, session, productID string, quantity int, size string) (cart.QuantityUpdate, error)
	UpdateItemOptions(ctx context.Context, session, productID, size string, colors []string, newSize *string) error
	ClearCart(ctx context.Context, session string) error
}

type Services struct {
	Catalog      catalog.Service
	Categories   category.Service
	Packages     packages.Service
	Governorates governorate.Service
	Cart         CartService
	Checkout     checkout.Service
	Users        user.Service
}

type Options struct {
	Tokens        middleware.TokenParser
	Limiter       *middleware.RateLimiter
	AllowedOrigin string
	SecureCookies bool
}

type Handler struct {
	svc  Services
	opts Options
}

func NewRouter(svc Services, opts Options) http.Handler {
	h := &Handler{svc: svc, opts: opts}

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.AllowedOrigin))
	r.Use(middleware.Auth(opts.Tokens))
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.With(uuidParam("id", catalog.ErrProductNotFound)).Get("/products/{id}", h.getProduct)
		r.Get("/categories", h.listCategories)
		r.Get("/packages", h.listPackages)
		r.With(uuidParam("id", packages.ErrPackageNotFound)).Get("/packages/{id}", h.getPackage)
		r.Get("/governorates", h.listGovernorates)

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession)
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addProduct)
			r.Delete("/items", h.removeItem)
			r.Patch("/items/quantity", h.updateQuantity)
			r.Patch("/items/options", h.updateOptions)
			r.Post("/packages", h.addPackage)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.CartSession)
			r.Post("/", h.submitOrder)
			r.Post("/quote", h.quote)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			h.adminRoutes(r)
		})
	})

	return r
}

func (h *Handler) adminRoutes(r chi.Router) {
	product := uuidParam("id", catalog.ErrProductNotFound)
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.createProduct)
		r.With(product).Patch("/{id}", h.updateProduct)
		r.With(product).Delete("/{id}", h.deleteProduct)
		r.With(product).Put("/{id}/stock", h.updateStock)
		r.With(product).Post("/{id}/offers", h.addOffer)
		r.With(product, uuidParam("offerID", catalog.ErrOfferNotFound)).Delete("/{id}/offers/{offerID}", h.deleteOffer)
		r.With(product).Post("/{id}/colors", h.addColor)
		r.With(product, uuidParam("colorID", catalog.ErrColorNotFound)).Delete("/{id}/colors/{colorID}", h.deleteColor)
		r.With(product).Post("/{id}/sizes", h.addSize)
		r.With(product, uuidParam("sizeID", catalog.ErrSizeNotFound)).Delete("/{id}/sizes/{sizeID}", h.deleteSize)
	})

	r.Post("/categories", h.createCategory)
	r.With(uuidParam("id", category.ErrCategoryNotFound)).Delete("/categories/{id}", h.deleteCategory)

	r.Post("/packages", h.createPackage)
	r.With(uuidParam("id", packages.ErrPackageNotFound)).Delete("/packages/{id}", h.deletePackage)

	gov := uuidParam("id", governorate.ErrGovernorateNotFound)
	r.Post("/governorates", h.createGovernorate)
	r.With(gov).Put("/governorates/{id}", h.updateGovernorate)
	r.With(gov).Delete("/governorates/{id}", h.deleteGovernorate)

	order := uuidParam("id", checkout.ErrOrderNotFound)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/incomplete", h.listIncompleteOrders)
	r.With(order).Get("/orders/{id}", h.getOrder)
	r.With(order).Patch("/orders/{id}/status", h.updateOrderStatus)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())
}
