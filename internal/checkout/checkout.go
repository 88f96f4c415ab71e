// Package checkout drives a single purchase from quantity selection through
// payment capture to order placement.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/payment"
	"github.com/shop-smart/storefront-client/internal/session"
)

type State string

const (
	StateClosed          State = "closed"
	StateCollecting      State = "collecting"
	StateSubmitting      State = "submitting"
	StateAwaitingPayment State = "awaitingExternalPayment"
	StateConfirming      State = "confirming"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

// Orchestrator runs the checkout state machine:
//
//	closed → collecting → submitting → awaitingExternalPayment → confirming → succeeded
//
// Cash on delivery skips the external-payment step. Widget dismissal and
// gateway errors return to collecting with submit re-enabled; a payment
// captured without a placed order is the one terminal failure.
type Orchestrator struct {
	api      *api.Client
	sessions *session.Manager
	gateway  payment.Gateway
	logger   *slog.Logger

	// onSuccess runs after a confirmed order, e.g. cart refresh and
	// navigation home.
	onSuccess func(ctx context.Context)

	mu           sync.Mutex
	state        State
	product      models.Product
	quantity     int
	method       models.PaymentMode
	confirmation *models.OrderConfirmation
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

func WithSuccessHook(hook func(ctx context.Context)) Option {
	return func(o *Orchestrator) { o.onSuccess = hook }
}

func New(apiClient *api.Client, sessions *session.Manager, gateway payment.Gateway, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api:      apiClient,
		sessions: sessions,
		gateway:  gateway,
		logger:   slog.Default(),
		state:    StateClosed,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Open starts collecting input for the given product. Requires a session;
// anonymous users are bounced to login before any network call.
func (o *Orchestrator) Open(product models.Product) error {
	if !o.sessions.Current().Authenticated() {
		return apperrors.AuthError("Please login to purchase items")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateClosed {
		return apperrors.BadStateError("A checkout is already in progress")
	}

	o.state = StateCollecting
	o.product = product
	o.quantity = 1
	o.method = models.PaymentModeOnline
	o.confirmation = nil

	return nil
}

func (o *Orchestrator) SetQuantity(quantity int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateCollecting {
		return apperrors.BadStateError("Quantity can only be changed while collecting input")
	}

	if quantity < 1 {
		return apperrors.ValidationError("Quantity must be at least 1")
	}

	o.quantity = quantity

	return nil
}

func (o *Orchestrator) SetPaymentMethod(method models.PaymentMode) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateCollecting {
		return apperrors.BadStateError("Payment method can only be changed while collecting input")
	}

	if method != models.PaymentModeOnline && method != models.PaymentModeCOD {
		return apperrors.ValidationError("Unknown payment method")
	}

	o.method = method

	return nil
}

// Close dismisses the checkout. Permitted while collecting or waiting on
// the widget, and after a terminal state; not once the order call is in
// flight.
func (o *Orchestrator) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateClosed, StateCollecting, StateAwaitingPayment, StateSucceeded, StateFailed:
		o.state = StateClosed
		o.product = models.Product{}
		o.quantity = 0

		return nil
	default:
		return apperrors.BadStateError("Checkout cannot be closed while an order is being placed")
	}
}

// Submit runs the purchase to a terminal state. It blocks while the widget
// is open; callers that must not block run it on their own goroutine.
func (o *Orchestrator) Submit(ctx context.Context) error {
	o.mu.Lock()

	if o.state != StateCollecting {
		o.mu.Unlock()

		return apperrors.BadStateError("Checkout is not collecting input")
	}

	o.state = StateSubmitting
	product := o.product
	quantity := o.quantity
	method := o.method
	o.mu.Unlock()

	if method == models.PaymentModeCOD {
		return o.placeOrder(ctx, product, quantity, models.PlaceOrderRequest{
			Quantity:    quantity,
			PaymentMode: models.PaymentModeCOD,
		})
	}

	return o.submitOnline(ctx, product, quantity)
}

func (o *Orchestrator) submitOnline(ctx context.Context, product models.Product, quantity int) error {
	total := product.ProductPrice * float64(quantity)

	intent, err := o.api.CreatePaymentOrder(ctx, total)
	if err != nil {
		o.setState(StateCollecting)

		return err
	}

	description := fmt.Sprintf("Payment for %s", product.ProductName)

	results, err := o.gateway.Open(ctx, *intent, description)
	if err != nil {
		o.setState(StateCollecting)

		return err
	}

	o.setState(StateAwaitingPayment)

	var result payment.Result

	select {
	case result = <-results:
	case <-ctx.Done():
		// The widget is out of process; a cancelled context is treated
		// the same as the user walking away from it.
		result = payment.Result{Status: payment.StatusDismissed}
	}

	switch result.Status {
	case payment.StatusCompleted:
		return o.placeOrder(ctx, product, quantity, models.PlaceOrderRequest{
			Quantity:      quantity,
			PaymentMode:   models.PaymentModeOnline,
			PaymentID:     result.PaymentID,
			PaymentStatus: true,
		})
	case payment.StatusDismissed:
		o.setState(StateCollecting)

		return apperrors.PaymentAbandonedError()
	default:
		o.setState(StateCollecting)

		o.logger.Warn("payment widget failed", slog.String("error", errorText(result.Err)))

		return apperrors.ServerError("Payment failed. Please try again.", 0).WithError(result.Err)
	}
}

func (o *Orchestrator) placeOrder(ctx context.Context, product models.Product, quantity int, req models.PlaceOrderRequest) error {
	o.setState(StateConfirming)

	confirmation, err := o.api.PlaceOrder(ctx, product.ID, req)
	if err != nil {
		if req.PaymentStatus {
			// The payment was captured but no order exists. There is no
			// compensation path; surface it and leave the rest to support.
			o.setState(StateFailed)

			o.logger.Error("order placement failed after captured payment",
				slog.String("productId", product.ID),
				slog.String("paymentId", req.PaymentID),
				slog.String("error", err.Error()),
			)

			return apperrors.PaymentUnreconciledError(req.PaymentID).WithError(err)
		}

		o.setState(StateCollecting)

		return err
	}

	o.mu.Lock()
	o.state = StateSucceeded
	o.confirmation = confirmation
	o.mu.Unlock()

	if o.onSuccess != nil {
		o.onSuccess(ctx)
	}

	return nil
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

func (o *Orchestrator) Quantity() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.quantity
}

func (o *Orchestrator) Total() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.product.ProductPrice * float64(o.quantity)
}

func (o *Orchestrator) Confirmation() *models.OrderConfirmation {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.confirmation == nil {
		return nil
	}

	confirmation := *o.confirmation

	return &confirmation
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = s
}

func errorText(err error) string {
	if err == nil {
		return "unknown"
	}

	return err.Error()
}
