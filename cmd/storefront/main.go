// Command storefront runs a short demo session against the configured
// backend: it lists featured products, adds the first one to the cart, and
// prints the cart summary. Useful for smoke-testing a deployment.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/utafrali/storefront/internal/app"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("storefront", cfg.LogLevel)
	log.Info("starting storefront session",
		slog.String("environment", cfg.Environment),
		slog.String("backend", cfg.BackendURL),
	)

	session, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize session", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = session.Close() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, session); err != nil {
		log.Error("demo flow failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, session *app.App) error {
	featured, err := session.Catalog.FeaturedProducts(ctx, 4)
	if err != nil {
		return fmt.Errorf("list featured products: %w", err)
	}

	fmt.Println("featured products:")
	for _, p := range featured {
		fmt.Printf("  %-24s %s %s\n", p.Name, formatPrice(p.Price), p.Currency)
	}
	if len(featured) == 0 {
		fmt.Println("  (none)")
		return nil
	}

	pick := featured[0]
	if err := session.Cart.AddItem(ctx, &pick, nil, nil, 1); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}

	fmt.Printf("\ncart: %d item(s), total %s %s\n",
		session.Cart.ItemCount(), formatPrice(session.Cart.Total()), session.Cart.Currency())
	return nil
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
