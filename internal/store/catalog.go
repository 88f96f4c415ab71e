package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shop-smart/storefront-client/internal/api"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/sanitize"
)

const defaultDebounce = 300 * time.Millisecond

// Catalog issues filtered product queries, debounced on filter changes.
// Rapid successive changes cancel the pending timer, and a generation guard
// makes sure an older response never overwrites a newer one.
type Catalog struct {
	api      *api.Client
	logger   *slog.Logger
	debounce time.Duration
	onUpdate func([]models.Product)

	mu       sync.Mutex
	filter   models.ProductFilter
	products []models.Product
	gen      uint64
	timer    *time.Timer
}

type CatalogOption func(*Catalog)

func WithDebounce(d time.Duration) CatalogOption {
	return func(c *Catalog) { c.debounce = d }
}

func WithCatalogLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) { c.logger = logger }
}

// WithUpdateHook registers a callback invoked with the product list each
// time a fresh response is applied. The view layer re-renders from it.
func WithUpdateHook(hook func([]models.Product)) CatalogOption {
	return func(c *Catalog) { c.onUpdate = hook }
}

func NewCatalog(apiClient *api.Client, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		api:      apiClient,
		logger:   slog.Default(),
		debounce: defaultDebounce,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetFilter records the new filter state and schedules a debounced fetch.
// A pending timer from an earlier change is cancelled, not the in-flight
// request itself; staleness is handled when the response arrives.
func (c *Catalog) SetFilter(filter models.ProductFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.filter = filter

	if c.timer != nil {
		c.timer.Stop()
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c.fetch(ctx, filter)
	})
}

// Refresh fetches immediately with the current filter, surfacing errors.
// Used for the initial mount.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()

	return c.fetch(ctx, filter)
}

func (c *Catalog) fetch(ctx context.Context, filter models.ProductFilter) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	products, err := c.api.ListProducts(ctx, filter)
	if err != nil {
		c.logger.Warn("product fetch failed", slog.String("error", err.Error()))

		return err
	}

	for i := range products {
		products[i] = sanitize.Product(products[i])
	}

	c.mu.Lock()

	if gen != c.gen {
		c.mu.Unlock()

		return nil
	}

	c.products = products
	hook := c.onUpdate
	c.mu.Unlock()

	if hook != nil {
		hook(products)
	}

	return nil
}

func (c *Catalog) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := make([]models.Product, len(c.products))
	copy(products, c.products)

	return products
}

func (c *Catalog) Filter() models.ProductFilter {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.filter
}
