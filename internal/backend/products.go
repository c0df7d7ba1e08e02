package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
)

// ProductFilters narrows a product listing request.
type ProductFilters struct {
	Category string
	Search   string
	Limit    int
}

// GetProducts lists products matching the filters.
func (c *Client) GetProducts(ctx context.Context, filters ProductFilters) ([]domain.Product, error) {
	query := url.Values{}
	if filters.Category != "" {
		query.Set("category", filters.Category)
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.Limit > 0 {
		query.Set("limit", strconv.Itoa(filters.Limit))
	}

	var products []domain.Product
	if err := c.get(ctx, "/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID fetches a single product. A missing product surfaces as an
// error wrapping errors.ErrNotFound, which is valid data from the backend's
// point of view, not a transport failure.
func (c *Client) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetFeaturedProducts lists up to limit featured products.
func (c *Client) GetFeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var products []domain.Product
	if err := c.get(ctx, "/products/featured", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetVariantsForProduct lists all variants of a product, active or not.
func (c *Client) GetVariantsForProduct(ctx context.Context, productID string) ([]domain.Variant, error) {
	var variants []domain.Variant
	if err := c.get(ctx, "/products/"+url.PathEscape(productID)+"/variants", nil, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}
