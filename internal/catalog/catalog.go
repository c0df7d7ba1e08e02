// Package catalog provides read access to the product catalog. The primary
// source is the remote backend; a bundled static dataset keeps browsing
// usable when the backend is unreachable.
package catalog

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// Filters narrows a product listing.
type Filters struct {
	Category string
	Search   string
	Limit    int
}

// Source serves catalog reads. Implementations: Remote (backend), Static
// (bundled data), Fallback (remote with static fallback).
type Source interface {
	Products(ctx context.Context, filters Filters) ([]domain.Product, error)
	ProductByID(ctx context.Context, id string) (*domain.Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error)
	VariantsForProduct(ctx context.Context, productID string) ([]domain.Variant, error)
}
