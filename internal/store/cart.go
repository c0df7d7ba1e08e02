// Package store owns the canonical in-memory cart and wishlist state for a
// storefront session. Every mutation writes the whole collection through to
// durable storage and notifies subscribers; the in-memory state is
// authoritative and never rolls back on a persistence failure.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/storage"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// CartStorageKey is the fixed durable-storage key for the cart collection.
const CartStorageKey = "cart"

// CartStore holds the session's cart. One instance exists per session; it is
// constructed empty, loaded once from durable storage, and mutated only
// through its methods. Safe for concurrent use.
type CartStore struct {
	mu      sync.Mutex
	storage storage.KV
	logger  *slog.Logger
	cart    domain.Cart
	subs    *subscriberList
}

// NewCartStore creates an empty cart store. Call Load before first use to
// rehydrate any previously persisted cart.
func NewCartStore(kv storage.KV, logger *slog.Logger) *CartStore {
	now := time.Now().UTC()
	return &CartStore{
		storage: kv,
		logger:  logger,
		cart: domain.Cart{
			ID:        uuid.New().String(),
			Items:     []domain.LineItem{},
			Currency:  "USD",
			CreatedAt: now,
			UpdatedAt: now,
		},
		subs: newSubscriberList(),
	}
}

// Load rehydrates the cart from durable storage. A missing key leaves the
// cart empty. A malformed blob is logged and discarded wholesale; there is no
// partial salvage and the caller never sees an error for it.
func (s *CartStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, CartStorageKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "cart storage read failed, starting empty",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed persisted cart",
			slog.String("error", err.Error()),
		)
		return
	}
	if cart.Items == nil {
		cart.Items = []domain.LineItem{}
	}
	s.cart = cart

	s.logger.InfoContext(ctx, "cart loaded",
		slog.Int("lines", len(cart.Items)),
	)
}

// AddItem adds a product (optionally a concrete variant of it) to the cart.
// If a line with the same (product, variant) identity exists, its quantity is
// incremented and the original add-time snapshot is retained; otherwise a new
// line is appended, so insertion order stays stable for rendering.
func (s *CartStore) AddItem(ctx context.Context, product *domain.Product, variant *domain.Variant, attrs map[string]string, quantity int) error {
	if product == nil {
		return apperrors.InvalidInput("product is required")
	}
	if quantity <= 0 {
		return apperrors.InvalidInput("quantity must be greater than 0")
	}

	s.mu.Lock()

	key := domain.LineKey{ProductID: product.ID}
	if variant != nil {
		key.VariantID = variant.ID
	}

	if i := s.cart.FindLine(key); i >= 0 {
		// Merge: the snapshot taken when the line was first added wins.
		s.cart.Items[i].Quantity += quantity
	} else {
		line := domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Price:     product.Price,
			Quantity:  quantity,
		}
		if variant != nil {
			line.VariantID = variant.ID
			line.Price = variant.UnitPrice(product)
			if variant.ImageURL != "" {
				line.ImageURL = variant.ImageURL
			}
			line.Attributes = cloneAttributes(attrs)
		}
		s.cart.Items = append(s.cart.Items, line)
	}

	s.cart.UpdatedAt = time.Now().UTC()
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.subs.notify()

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("line_key", key.String()),
		slog.Int("quantity", quantity),
	)
	return persistErr
}

// UpdateQuantity sets the absolute quantity of the line identified by key.
// A quantity of zero is equivalent to Remove. Setting a positive quantity on
// an absent line returns a not-found error.
func (s *CartStore) UpdateQuantity(ctx context.Context, key domain.LineKey, quantity int) error {
	if quantity < 0 {
		return apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity == 0 {
		return s.Remove(ctx, key)
	}

	s.mu.Lock()

	i := s.cart.FindLine(key)
	if i < 0 {
		s.mu.Unlock()
		return apperrors.NotFound("cart line", key.String())
	}
	s.cart.Items[i].Quantity = quantity
	s.cart.UpdatedAt = time.Now().UTC()
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.subs.notify()

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("line_key", key.String()),
		slog.Int("quantity", quantity),
	)
	return persistErr
}

// Remove deletes the line identified by key. Removing an absent line is a
// no-op, not an error.
func (s *CartStore) Remove(ctx context.Context, key domain.LineKey) error {
	s.mu.Lock()

	i := s.cart.FindLine(key)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
	s.cart.UpdatedAt = time.Now().UTC()
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.subs.notify()

	s.logger.InfoContext(ctx, "cart line removed",
		slog.String("line_key", key.String()),
	)
	return persistErr
}

// Clear empties the cart unconditionally. Used after a confirmed order.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.cart.Items = []domain.LineItem{}
	s.cart.UpdatedAt = time.Now().UTC()
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.subs.notify()

	s.logger.InfoContext(ctx, "cart cleared")
	return persistErr
}

// Items returns a copy of the current cart lines in insertion order.
func (s *CartStore) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.LineItem, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items
}

// Total recomputes the cart total from the current lines.
func (s *CartStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Currency returns the cart's currency code.
func (s *CartStore) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Currency
}

// ItemCount returns the total quantity across all lines.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// Subscribe registers a callback invoked after every successful mutation.
// The callback receives no payload; read the store for the latest snapshot.
// The returned function unsubscribes.
func (s *CartStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// persistLocked writes the whole cart through to durable storage. A write
// failure is logged and returned, but the in-memory state stands: callers
// treat the error as a warning, not a rollback.
func (s *CartStore) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(&s.cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.storage.Set(ctx, CartStorageKey, data); err != nil {
		s.logger.WarnContext(ctx, "cart persistence failed, in-memory state retained",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func cloneAttributes(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
