package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/sanitize"
	"github.com/shop-smart/storefront-client/internal/session"
	"github.com/shop-smart/storefront-client/internal/validate"
)

// OrderStore holds the order history view. Each refresh enriches orders
// with the product's embedded review list so review eligibility is always
// derived from the freshest fetch.
type OrderStore struct {
	api      *api.Client
	sessions *session.Manager
	logger   *slog.Logger

	mu     sync.Mutex
	orders []models.Order
	gen    uint64
}

func NewOrderStore(apiClient *api.Client, sessions *session.Manager, logger *slog.Logger) *OrderStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderStore{
		api:      apiClient,
		sessions: sessions,
		logger:   logger,
	}
}

// Refresh fetches the order history and, per order, the product's current
// review list. A failed detail fetch degrades that order to an empty review
// list rather than failing the whole history.
func (s *OrderStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	orders, err := s.api.OrderHistory(ctx)
	if err != nil {
		return err
	}

	for i := range orders {
		product, err := s.api.ProductDetails(ctx, orders[i].Product.ID)
		if err != nil {
			s.logger.Warn("review enrichment failed",
				slog.String("productId", orders[i].Product.ID),
				slog.String("error", err.Error()),
			)

			orders[i].Product.Review = nil

			continue
		}

		orders[i].Product.Review = sanitize.Reviews(product.Review)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil
	}

	s.orders = orders

	return nil
}

func (s *OrderStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]models.Order, len(s.orders))
	copy(orders, s.orders)

	return orders
}

// Cancel requests cancellation. Only permitted while the order is pending
// or confirmed; later statuses are rejected before any network call.
func (s *OrderStore) Cancel(ctx context.Context, orderID string) error {
	order, ok := s.find(orderID)
	if !ok {
		return apperrors.NotFoundError("Order not found")
	}

	if !order.Cancellable() {
		return apperrors.BadStateError("This order can no longer be cancelled")
	}

	if err := s.api.CancelOrder(ctx, orderID); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

// SubmitReview validates and submits a review, then refreshes so the
// eligibility check sees the new state.
func (s *OrderStore) SubmitReview(ctx context.Context, productID string, review models.ReviewRequest) error {
	if err := validate.Struct(review); err != nil {
		return err
	}

	if err := s.api.AddRatingAndReview(ctx, productID, review); err != nil {
		return err
	}

	return s.Refresh(ctx)
}

// CanReview reports whether the current user may still write a review for
// the order's product: the order must be delivered and the freshest review
// list must not already contain one by this user.
func (s *OrderStore) CanReview(order models.Order) bool {
	if order.OrderStatus != models.OrderStatusDelivered {
		return false
	}

	current := s.sessions.Current()
	if !current.Authenticated() {
		return false
	}

	return !order.Product.ReviewedBy(current.UserID)
}

func (s *OrderStore) find(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.ID == orderID {
			return order, true
		}
	}

	return models.Order{}, false
}
