// Package store holds the client-side view state for cart, wishlist,
// catalog and orders, and keeps it reconciled with the server. The server
// is always authoritative: after every confirmed mutation the local
// collection is replaced wholesale by the server's payload.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/session"
)

const defaultCommitDelay = 500 * time.Millisecond

// CartStore synchronizes the cart view with the server. Quantity edits are
// optimistic: the local value changes immediately and a debounced commit
// pushes the final value, after which the server's collection wins.
type CartStore struct {
	api      *api.Client
	sessions *session.Manager
	logger   *slog.Logger

	commitDelay time.Duration

	mu     sync.Mutex
	items  []models.CartItem
	gen    uint64
	dirty  map[string]int
	timers map[string]*time.Timer
}

type CartOption func(*CartStore)

func WithCommitDelay(d time.Duration) CartOption {
	return func(s *CartStore) { s.commitDelay = d }
}

func WithCartLogger(logger *slog.Logger) CartOption {
	return func(s *CartStore) { s.logger = logger }
}

func NewCartStore(apiClient *api.Client, sessions *session.Manager, opts ...CartOption) *CartStore {
	s := &CartStore{
		api:         apiClient,
		sessions:    sessions,
		logger:      slog.Default(),
		commitDelay: defaultCommitDelay,
		dirty:       make(map[string]int),
		timers:      make(map[string]*time.Timer),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Refresh replaces local state with the server's cart.
func (s *CartStore) Refresh(ctx context.Context) error {
	gen := s.nextGen()

	items, err := s.api.GetCart(ctx)
	if err != nil {
		return err
	}

	s.apply(gen, items)

	return nil
}

// Add puts one unit of the product in the cart. Without a session no
// network call is made; the caller redirects to login.
func (s *CartStore) Add(ctx context.Context, productID string) error {
	if !s.sessions.Current().Authenticated() {
		return apperrors.AuthError("Please login to add items to cart")
	}

	gen := s.nextGen()

	items, err := s.api.AddToCart(ctx, productID)
	if err != nil {
		return err
	}

	s.apply(gen, items)

	return nil
}

// Remove deletes the item and replaces local state with the server's cart.
func (s *CartStore) Remove(ctx context.Context, productID string) error {
	s.clearPending(productID)

	gen := s.nextGen()

	items, err := s.api.RemoveFromCart(ctx, productID)
	if err != nil {
		return err
	}

	s.apply(gen, items)

	return nil
}

// SetQuantity mutates the local quantity immediately for responsiveness and
// schedules a debounced commit of the final value. Quantity zero or below
// removes the item from the local view and commits as a remove.
func (s *CartStore) SetQuantity(productID string, quantity int) {
	s.mu.Lock()

	if quantity < 0 {
		quantity = 0
	}

	found := false

	if quantity == 0 {
		kept := s.items[:0]

		for _, item := range s.items {
			if item.Product.ID == productID {
				found = true

				continue
			}

			kept = append(kept, item)
		}

		s.items = kept
	} else {
		for i := range s.items {
			if s.items[i].Product.ID == productID {
				s.items[i].Quantity = quantity
				found = true

				break
			}
		}
	}

	if !found && quantity != 0 {
		s.mu.Unlock()

		return
	}

	s.dirty[productID] = quantity

	if timer, ok := s.timers[productID]; ok {
		timer.Stop()
	}

	s.timers[productID] = time.AfterFunc(s.commitDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.Commit(ctx, productID); err != nil {
			s.logger.Warn("cart quantity commit failed",
				slog.String("productId", productID),
				slog.String("error", err.Error()),
			)

			// Re-fetch so the view falls back to the server's truth.
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("cart refresh after failed commit failed", slog.String("error", err.Error()))
			}
		}
	})

	s.mu.Unlock()
}

// Commit flushes the pending quantity for the item, if any. A pending zero
// commits as a remove. The server's returned collection replaces local
// state either way.
func (s *CartStore) Commit(ctx context.Context, productID string) error {
	s.mu.Lock()

	quantity, pending := s.dirty[productID]
	if !pending {
		s.mu.Unlock()

		return nil
	}

	delete(s.dirty, productID)
	delete(s.timers, productID)
	s.mu.Unlock()

	gen := s.nextGen()

	var (
		items []models.CartItem
		err   error
	)

	if quantity == 0 {
		items, err = s.api.RemoveFromCart(ctx, productID)
	} else {
		items, err = s.api.UpdateCartQuantity(ctx, productID, quantity)
	}

	if err != nil {
		return err
	}

	s.apply(gen, items)

	return nil
}

// Flush commits every pending quantity. Checkout calls it before reading
// the cart so no divergent local edit survives.
func (s *CartStore) Flush(ctx context.Context) error {
	s.mu.Lock()

	ids := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		if err := s.Commit(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)

	return items
}

// Total is recomputed from the current collection on every call.
func (s *CartStore) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.CartTotal(s.items)
}

// Synced reports whether the item has no pending local edit.
func (s *CartStore) Synced(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, pending := s.dirty[productID]

	return !pending
}

func (s *CartStore) nextGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++

	return s.gen
}

// apply installs a server-confirmed collection unless a newer request has
// been issued since; stale responses are discarded.
func (s *CartStore) apply(gen uint64, items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}

	s.items = items
}

func (s *CartStore) clearPending(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[productID]; ok {
		timer.Stop()
		delete(s.timers, productID)
	}

	delete(s.dirty, productID)
}
