package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// failingSource fails every read with a fixed error.
type failingSource struct {
	err   error
	calls int
}

func (f *failingSource) Products(context.Context, Filters) ([]domain.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingSource) ProductByID(context.Context, string) (*domain.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingSource) FeaturedProducts(context.Context, int) ([]domain.Product, error) {
	f.calls++
	return nil, f.err
}

func (f *failingSource) VariantsForProduct(context.Context, string) ([]domain.Variant, error) {
	f.calls++
	return nil, f.err
}

func newFallback(t *testing.T, primary Source) *Fallback {
	t.Helper()
	static, err := NewStatic()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFallback(primary, static, logger)
}

func TestFallback_ServesPrimaryWhenHealthy(t *testing.T) {
	static, err := NewStatic()
	require.NoError(t, err)
	f := newFallback(t, static)

	products, err := f.Products(context.Background(), Filters{})
	require.NoError(t, err)
	assert.NotEmpty(t, products)
}

func TestFallback_FallsBackOnPrimaryFailure(t *testing.T) {
	primary := &failingSource{err: apperrors.Unavailable("backend down")}
	f := newFallback(t, primary)

	products, err := f.Products(context.Background(), Filters{})
	require.NoError(t, err)
	assert.NotEmpty(t, products)
	assert.Equal(t, 1, primary.calls)

	product, err := f.ProductByID(context.Background(), "prod-linen-shirt")
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", product.Name)

	featured, err := f.FeaturedProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.NotEmpty(t, featured)

	variants, err := f.VariantsForProduct(context.Background(), "prod-linen-shirt")
	require.NoError(t, err)
	assert.NotEmpty(t, variants)
}

func TestFallback_NotFoundPassesThrough(t *testing.T) {
	// A not-found answer from the backend is authoritative; the bundled
	// dataset must not resurrect deleted products.
	primary := &failingSource{err: apperrors.NotFound("product", "prod-linen-shirt")}
	f := newFallback(t, primary)

	product, err := f.ProductByID(context.Background(), "prod-linen-shirt")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFallback_FiltersApplyToFallbackData(t *testing.T) {
	primary := &failingSource{err: apperrors.Unavailable("backend down")}
	f := newFallback(t, primary)

	products, err := f.Products(context.Background(), Filters{Category: "kitchen"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Stoneware Mug", products[0].Name)
}
