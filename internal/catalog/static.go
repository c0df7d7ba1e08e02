package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

//go:embed data/products.json data/variants.json
var sampleData embed.FS

// Static serves catalog reads from the dataset bundled into the binary. It
// backs the storefront when the backend is down and seeds demo deployments.
type Static struct {
	products []domain.Product
	variants map[string][]domain.Variant
}

// NewStatic loads the bundled dataset.
func NewStatic() (*Static, error) {
	rawProducts, err := sampleData.ReadFile("data/products.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled products: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(rawProducts, &products); err != nil {
		return nil, fmt.Errorf("parse bundled products: %w", err)
	}

	rawVariants, err := sampleData.ReadFile("data/variants.json")
	if err != nil {
		return nil, fmt.Errorf("read bundled variants: %w", err)
	}
	var variants []domain.Variant
	if err := json.Unmarshal(rawVariants, &variants); err != nil {
		return nil, fmt.Errorf("parse bundled variants: %w", err)
	}

	byProduct := make(map[string][]domain.Variant)
	for _, v := range variants {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}

	return &Static{products: products, variants: byProduct}, nil
}

func (s *Static) Products(_ context.Context, filters Filters) ([]domain.Product, error) {
	search := strings.ToLower(filters.Search)

	matched := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filters.Category != "" && p.Category != filters.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
		if filters.Limit > 0 && len(matched) == filters.Limit {
			break
		}
	}
	return matched, nil
}

func (s *Static) ProductByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

func (s *Static) FeaturedProducts(_ context.Context, limit int) ([]domain.Product, error) {
	featured := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if !p.Featured {
			continue
		}
		featured = append(featured, p)
		if limit > 0 && len(featured) == limit {
			break
		}
	}
	return featured, nil
}

func (s *Static) VariantsForProduct(_ context.Context, productID string) ([]domain.Variant, error) {
	variants := s.variants[productID]
	out := make([]domain.Variant, len(variants))
	copy(out, variants)
	return out, nil
}
