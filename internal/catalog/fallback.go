package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

var catalogFallbackTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_catalog_fallback_total",
		Help: "Catalog reads served from the bundled dataset after a backend failure",
	},
	[]string{"op"},
)

func init() {
	prometheus.MustRegister(catalogFallbackTotal)
}

// Fallback serves catalog reads from the primary source and falls back to
// the secondary when the primary fails. A not-found from the primary is an
// answer, not a failure, and passes through without fallback.
type Fallback struct {
	primary   Source
	secondary Source
	logger    *slog.Logger
}

// NewFallback composes a primary source with a fallback.
func NewFallback(primary, secondary Source, logger *slog.Logger) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, logger: logger}
}

func (f *Fallback) Products(ctx context.Context, filters Filters) ([]domain.Product, error) {
	products, err := f.primary.Products(ctx, filters)
	if err == nil || !f.shouldFallBack(ctx, "products", err) {
		return products, err
	}
	return f.secondary.Products(ctx, filters)
}

func (f *Fallback) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := f.primary.ProductByID(ctx, id)
	if err == nil || !f.shouldFallBack(ctx, "product_by_id", err) {
		return product, err
	}
	return f.secondary.ProductByID(ctx, id)
}

func (f *Fallback) FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := f.primary.FeaturedProducts(ctx, limit)
	if err == nil || !f.shouldFallBack(ctx, "featured_products", err) {
		return products, err
	}
	return f.secondary.FeaturedProducts(ctx, limit)
}

func (f *Fallback) VariantsForProduct(ctx context.Context, productID string) ([]domain.Variant, error) {
	variants, err := f.primary.VariantsForProduct(ctx, productID)
	if err == nil || !f.shouldFallBack(ctx, "variants_for_product", err) {
		return variants, err
	}
	return f.secondary.VariantsForProduct(ctx, productID)
}

func (f *Fallback) shouldFallBack(ctx context.Context, op string, err error) bool {
	if errors.Is(err, apperrors.ErrNotFound) {
		return false
	}
	catalogFallbackTotal.WithLabelValues(op).Inc()
	f.logger.WarnContext(ctx, "catalog read failed, serving bundled data",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
	return true
}
