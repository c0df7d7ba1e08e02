package domain

import "time"

// LineKey is the composite identity of a cart line: product plus variant.
// VariantID is empty for products purchased without a variant, in which case
// the product ID alone identifies the line.
type LineKey struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
}

// String renders the key for logs and error messages.
func (k LineKey) String() string {
	if k.VariantID == "" {
		return k.ProductID
	}
	return k.ProductID + "/" + k.VariantID
}

// LineItem is a single cart line. Name, image, price, and attributes are
// snapshots denormalized at add time; later catalog changes do not rewrite
// lines already in the cart.
type LineItem struct {
	ProductID  string            `json:"product_id"`
	VariantID  string            `json:"variant_id,omitempty"`
	Name       string            `json:"name"`
	ImageURL   string            `json:"image_url,omitempty"`
	Price      int64             `json:"price"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Key returns the line's composite identity.
func (li *LineItem) Key() LineKey {
	return LineKey{ProductID: li.ProductID, VariantID: li.VariantID}
}

// HasVariant reports whether the line was added with a concrete variant.
func (li *LineItem) HasVariant() bool {
	return li.VariantID != ""
}

// Subtotal returns price * quantity for this line.
func (li *LineItem) Subtotal() int64 {
	return li.Price * int64(li.Quantity)
}

// Cart holds the ordered cart lines for a session. Lines keep insertion
// order; at most one line exists per LineKey.
type Cart struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total computes the cart total from scratch on every call. The total is
// never cached, so it cannot drift from the line items.
func (c *Cart) Total() int64 {
	var total int64
	for i := range c.Items {
		total += c.Items[i].Subtotal()
	}
	return total
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

// FindLine returns the index of the line matching the key, or -1.
func (c *Cart) FindLine(key LineKey) int {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}
	return -1
}
