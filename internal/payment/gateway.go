// Package payment models the external payment widget. The backend mints a
// payment intent; an out-of-process widget captures it and reports back an
// indeterminate time later, or never. That boundary is made explicit as a
// result channel with exactly three outcomes.
package payment

import (
	"context"

	"github.com/shop-smart/storefront-client/internal/models"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusDismissed Status = "dismissed"
	StatusErrored   Status = "errored"
)

// Result is the widget's terminal outcome. PaymentID is set only when the
// status is completed.
type Result struct {
	Status    Status
	PaymentID string
	Err       error
}

// Gateway hands a payment intent to the external widget and returns a
// channel that yields exactly one Result.
type Gateway interface {
	Open(ctx context.Context, order models.PaymentOrder, description string) (<-chan Result, error)
}

// WidgetOptions is what the hosted widget needs to present a capture flow.
type WidgetOptions struct {
	KeyID        string
	OrderID      string
	Amount       int64
	Currency     string
	MerchantName string
	Description  string
}

// Launcher presents the widget to the user and blocks until it reports an
// outcome. Implementations belong to whichever surface embeds this client.
type Launcher interface {
	Launch(ctx context.Context, opts WidgetOptions) Result
}

// Widget adapts a Launcher to the Gateway contract.
type Widget struct {
	keyID        string
	merchantName string
	launcher     Launcher
}

func NewWidget(keyID, merchantName string, launcher Launcher) *Widget {
	return &Widget{
		keyID:        keyID,
		merchantName: merchantName,
		launcher:     launcher,
	}
}

func (w *Widget) Open(ctx context.Context, order models.PaymentOrder, description string) (<-chan Result, error) {
	opts := WidgetOptions{
		KeyID:        w.keyID,
		OrderID:      order.ID,
		Amount:       order.Amount,
		Currency:     order.Currency,
		MerchantName: w.merchantName,
		Description:  description,
	}

	results := make(chan Result, 1)

	go func() {
		results <- w.launcher.Launch(ctx, opts)
	}()

	return results, nil
}

// Unattended is the launcher used when no interactive surface is attached,
// e.g. the headless daemon build. It reports every attempt as dismissed so
// online checkouts fail safe instead of hanging.
type Unattended struct{}

func (Unattended) Launch(ctx context.Context, opts WidgetOptions) Result {
	return Result{Status: StatusDismissed}
}
