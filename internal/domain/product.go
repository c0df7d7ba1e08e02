package domain

import (
	"time"

	"github.com/utafrali/storefront/pkg/slug"
)

// Product represents a catalog product as served by the backend.
// Products are read-only from the storefront's perspective.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	ImageURL    string    `json:"image_url,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating,omitempty"`
	ReviewCount int       `json:"review_count,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Slug returns the URL path segment for the product's page.
func (p *Product) Slug() string {
	return slug.Make(p.Name)
}

// Variant represents a concrete purchasable configuration of a product
// (e.g., a specific color+size) with its own stock, and optional price and
// image overrides.
type Variant struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"product_id"`
	SKU        string            `json:"sku,omitempty"`
	Attributes map[string]string `json:"attributes"`
	Price      *int64            `json:"price,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
	Stock      int               `json:"stock"`
	Active     bool              `json:"active"`
}

// Selectable reports whether the variant can currently be purchased.
func (v *Variant) Selectable() bool {
	return v.Active && v.Stock > 0
}

// UnitPrice returns the variant's price override when present, falling back
// to the product's base price.
func (v *Variant) UnitPrice(p *Product) int64 {
	if v != nil && v.Price != nil {
		return *v.Price
	}
	return p.Price
}
