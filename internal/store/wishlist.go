package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/session"
)

// WishlistStore mirrors wishlist membership as a set of product ids. The
// set only drives icon state; it is refreshed after every toggle and never
// treated as authoritative in between.
type WishlistStore struct {
	api      *api.Client
	sessions *session.Manager
	logger   *slog.Logger

	mu    sync.Mutex
	ids   map[string]struct{}
	items []models.WishListItem
	gen   uint64
}

func NewWishlistStore(apiClient *api.Client, sessions *session.Manager, logger *slog.Logger) *WishlistStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &WishlistStore{
		api:      apiClient,
		sessions: sessions,
		logger:   logger,
		ids:      make(map[string]struct{}),
	}
}

// Refresh replaces the membership set with the server's wishlist.
func (s *WishlistStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	items, err := s.api.GetWishList(ctx)
	if err != nil {
		return err
	}

	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		ids[item.Product.ID] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}

	s.items = items
	s.ids = ids

	return nil
}

// Prefetch is the passive variant used to prime icon state on page load;
// failures are logged and swallowed, prior state kept.
func (s *WishlistStore) Prefetch(ctx context.Context) {
	if !s.sessions.Current().Role.IsShopper() {
		return
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("wishlist prefetch failed", slog.String("error", err.Error()))
	}
}

// Toggle adds the product if absent, removes it if present — exactly one
// call either way — then refreshes the membership set.
func (s *WishlistStore) Toggle(ctx context.Context, productID string) error {
	if !s.sessions.Current().Authenticated() {
		return apperrors.AuthError("Please login to add items to your wishlist")
	}

	var err error

	if s.Contains(productID) {
		err = s.api.RemoveFromWishList(ctx, productID)
	} else {
		err = s.api.AddToWishList(ctx, productID)
	}

	if err != nil {
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("wishlist refresh after toggle failed", slog.String("error", err.Error()))
	}

	return nil
}

func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[productID]

	return ok
}

func (s *WishlistStore) Items() []models.WishListItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.WishListItem, len(s.items))
	copy(items, s.items)

	return items
}
