// Package app wires one storefront session: durable storage, the cart and
// wishlist stores, the backend client with its auth session, and the catalog,
// checkout, and admin surfaces on top.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/internal/admin"
	"github.com/utafrali/storefront/internal/backend"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/checkout"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/storage"
	filekv "github.com/utafrali/storefront/internal/storage/file"
	rediskv "github.com/utafrali/storefront/internal/storage/redis"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// App holds one session's fully wired component graph.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	rdb    *redis.Client // nil for the file storage backend
	health *health.Registry

	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Backend  *backend.Client
	Session  *backend.Session
	Catalog  catalog.Source
	Checkout *checkout.Service
	Admin    *admin.Dashboard
}

// New creates a session, initializing storage and rehydrating persisted
// state.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	kv, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	a.Cart = store.NewCartStore(kv, logger)
	a.Cart.Load(ctx)
	a.Wishlist = store.NewWishlistStore(kv, logger)
	a.Wishlist.Load(ctx)

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.BackendTimeout
	breaker := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("backend"),
		logger,
	)

	a.Backend = backend.NewClient(cfg.BackendURL, cfg.BackendAPIKey, breaker, logger)
	a.Session = backend.NewSession(a.Backend, logger)

	static, err := catalog.NewStatic()
	if err != nil {
		return nil, fmt.Errorf("load bundled catalog: %w", err)
	}
	a.Catalog = catalog.NewFallback(catalog.NewRemote(a.Backend), static, logger)

	a.Checkout = checkout.NewService(a.Cart, a.Backend, a.Session, logger)
	a.Admin = admin.NewDashboard(a.Backend, a.Session, logger)

	// Storage is critical: without it the session loses its cart on exit.
	// The backend is not: catalog reads degrade to the bundled dataset.
	a.health = health.NewRegistry()
	a.health.Register("storage", func(ctx context.Context) error {
		return kv.Set(ctx, "healthcheck", []byte("ok"))
	})
	a.health.RegisterNonCritical("backend", func(ctx context.Context) error {
		_, err := a.Backend.GetProducts(ctx, backend.ProductFilters{Limit: 1})
		return err
	})

	logger.Info("storefront session ready",
		slog.String("backend", cfg.BackendURL),
		slog.String("storage", cfg.StorageBackend),
	)
	return a, nil
}

// openStorage builds the durable KV backend named by the config.
func (a *App) openStorage(ctx context.Context) (storage.KV, error) {
	switch a.cfg.StorageBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.RedisAddr,
			Password: a.cfg.RedisPass,
			DB:       a.cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb
		a.logger.Info("connected to Redis",
			slog.String("addr", a.cfg.RedisAddr),
			slog.Int("db", a.cfg.RedisDB),
		)
		return rediskv.New(rdb, time.Duration(a.cfg.StateTTL)*time.Hour), nil
	default:
		kv, err := filekv.New(a.cfg.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return kv, nil
	}
}

// Health runs all dependency checks and reports the session's state.
func (a *App) Health(ctx context.Context) health.Report {
	return a.health.Check(ctx)
}

// Close releases external resources.
func (a *App) Close() error {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}
	a.logger.Info("storefront session closed")
	return nil
}
