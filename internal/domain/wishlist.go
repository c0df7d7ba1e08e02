package domain

import "time"

// WishlistItem is a product saved to the wishlist. The wishlist has set
// semantics keyed by product ID; there is no variant dimension or quantity.
type WishlistItem struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Wishlist holds the saved products for a session in insertion order.
type Wishlist struct {
	Items []WishlistItem `json:"items"`
}

// Contains reports whether the product is already saved.
func (w *Wishlist) Contains(productID string) bool {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// FindItem returns the index of the item with the given product ID, or -1.
func (w *Wishlist) FindItem(productID string) int {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
