package catalog

import (
	"context"

	"github.com/utafrali/storefront/internal/backend"
	"github.com/utafrali/storefront/internal/domain"
)

// Remote serves catalog reads from the backend.
type Remote struct {
	client *backend.Client
}

// NewRemote creates a backend-backed catalog source.
func NewRemote(client *backend.Client) *Remote {
	return &Remote{client: client}
}

func (r *Remote) Products(ctx context.Context, filters Filters) ([]domain.Product, error) {
	return r.client.GetProducts(ctx, backend.ProductFilters{
		Category: filters.Category,
		Search:   filters.Search,
		Limit:    filters.Limit,
	})
}

func (r *Remote) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.client.GetProductByID(ctx, id)
}

func (r *Remote) FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	return r.client.GetFeaturedProducts(ctx, limit)
}

func (r *Remote) VariantsForProduct(ctx context.Context, productID string) ([]domain.Variant, error) {
	return r.client.GetVariantsForProduct(ctx, productID)
}
