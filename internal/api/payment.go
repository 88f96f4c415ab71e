package api

import (
	"context"
	"net/http"

	"github.com/shop-smart/storefront-client/internal/models"
)

// CreatePaymentOrder asks the backend to mint a payment intent for the given
// amount. The returned descriptor is handed to the external payment widget.
func (c *Client) CreatePaymentOrder(ctx context.Context, amount float64) (*models.PaymentOrder, error) {
	req := models.CreatePaymentOrderRequest{Amount: amount}

	var out models.PaymentOrder

	if err := c.doJSON(ctx, http.MethodPost, "OrderPayment", req, false, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
