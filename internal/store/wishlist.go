package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/storage"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// WishlistStorageKey is the fixed durable-storage key for the wishlist.
const WishlistStorageKey = "wishlist"

// WishlistStore holds the session's wishlist: a set of product snapshots
// keyed by product ID. Safe for concurrent use.
type WishlistStore struct {
	mu       sync.Mutex
	storage  storage.KV
	logger   *slog.Logger
	wishlist domain.Wishlist
	subs     *subscriberList
}

// NewWishlistStore creates an empty wishlist store. Call Load before first
// use to rehydrate any previously persisted wishlist.
func NewWishlistStore(kv storage.KV, logger *slog.Logger) *WishlistStore {
	return &WishlistStore{
		storage:  kv,
		logger:   logger,
		wishlist: domain.Wishlist{Items: []domain.WishlistItem{}},
		subs:     newSubscriberList(),
	}
}

// Load rehydrates the wishlist from durable storage. Missing keys and
// malformed blobs both leave the wishlist empty; a malformed blob is logged
// and discarded wholesale.
func (s *WishlistStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, WishlistStorageKey)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "wishlist storage read failed, starting empty",
				slog.String("error", err.Error()),
			)
		}
		return
	}

	var wl domain.Wishlist
	if err := json.Unmarshal(data, &wl); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed persisted wishlist",
			slog.String("error", err.Error()),
		)
		return
	}
	if wl.Items == nil {
		wl.Items = []domain.WishlistItem{}
	}
	s.wishlist = wl
}

// Add saves a product to the wishlist. Adding a product that is already
// saved is a no-op: the wishlist has set semantics.
func (s *WishlistStore) Add(ctx context.Context, product *domain.Product) error {
	if product == nil {
		return apperrors.InvalidInput("product is required")
	}

	s.mu.Lock()
	if s.wishlist.Contains(product.ID) {
		s.mu.Unlock()
		return nil
	}
	s.wishlist.Items = append(s.wishlist.Items, domain.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		AddedAt:   time.Now().UTC(),
	})
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.subs.notify()

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.String("product_id", product.ID),
	)
	return persistErr
}

// Remove deletes a product from the wishlist. Removing an absent product is
// a no-op, not an error.
func (s *WishlistStore) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()

	i := s.wishlist.FindItem(productID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.wishlist.Items = append(s.wishlist.Items[:i], s.wishlist.Items[i+1:]...)
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.subs.notify()

	s.logger.InfoContext(ctx, "product removed from wishlist",
		slog.String("product_id", productID),
	)
	return persistErr
}

// Clear empties the wishlist unconditionally.
func (s *WishlistStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.wishlist.Items = []domain.WishlistItem{}
	persistErr := s.persistLocked(ctx)
	s.mu.Unlock()

	s.subs.notify()

	s.logger.InfoContext(ctx, "wishlist cleared")
	return persistErr
}

// Contains reports whether the product is saved.
func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(productID)
}

// Items returns a copy of the saved products in insertion order.
func (s *WishlistStore) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.WishlistItem, len(s.wishlist.Items))
	copy(items, s.wishlist.Items)
	return items
}

// Subscribe registers a callback invoked after every successful mutation.
// The returned function unsubscribes.
func (s *WishlistStore) Subscribe(fn func()) func() {
	return s.subs.subscribe(fn)
}

// persistLocked writes the whole wishlist through to durable storage. A
// write failure is logged and returned; the in-memory state stands.
func (s *WishlistStore) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(&s.wishlist)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}
	if err := s.storage.Set(ctx, WishlistStorageKey, data); err != nil {
		s.logger.WarnContext(ctx, "wishlist persistence failed, in-memory state retained",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persist wishlist: %w", err)
	}
	return nil
}
