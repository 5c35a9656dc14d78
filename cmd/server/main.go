package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/catalog"
	"storefront-be/internal/category"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/customer"
	"storefront-be/internal/db"
	"storefront-be/internal/governorate"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/packages"
	"storefront-be/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	handler, err := newServer(cfg, database, limiter)
	if err != nil {
		return err
	}

	addr := ":" + cfg.AppPort
	logger.L().Info("storefront API listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, handler)
}

// newServer wires repositories, services and the HTTP router. Carts are kept
// in Redis when REDIS_ADDR is set and in process memory otherwise. Hydrated
// carts are cached per process either way, so the API runs as one instance
// (or behind session-affine routing).
func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) (http.Handler, error) {
	var snapshots cart.SnapshotStore = cart.NewMemorySnapshotStore()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		snapshots = cart.NewRedisSnapshotStore(client, cfg.CartTTL)
	} else {
		logger.L().Warn("REDIS_ADDR not set, carts will not survive a restart")
	}

	catalogSvc := catalog.NewService(catalog.NewRepository(database))
	categorySvc := category.NewService(category.NewRepository(database))
	packageSvc := packages.NewService(packages.NewRepository(database))
	governorateSvc := governorate.NewService(governorate.NewRepository(database))
	customerSvc := customer.NewService(customer.NewRepository(database))

	cartSvc, err := cart.NewService(snapshots, catalogSvc, packageSvc, cfg.CartCacheSize)
	if err != nil {
		return nil, err
	}

	checkoutSvc := checkout.NewService(
		checkout.NewRepository(database),
		cartSvc,
		governorateSvc,
		customerSvc,
		catalogSvc,
		packageSvc,
	)

	tokens := auth.NewTokenManager(cfg.JWTSecret, 0)
	userSvc := user.NewService(user.NewRepository(database), tokens)

	return httpapi.NewRouter(httpapi.Services{
		Catalog:      catalogSvc,
		Categories:   categorySvc,
		Packages:     packageSvc,
		Governorates: governorateSvc,
		Cart:         cartSvc,
		Checkout:     checkoutSvc,
		Users:        userSvc,
	}, httpapi.Options{
		Tokens:        tokens,
		Limiter:       limiter,
		AllowedOrigin: cfg.AllowedOrigin,
		SecureCookies: cfg.AppEnv == "production",
	}), nil
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func startServer(addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
