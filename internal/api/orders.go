package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shop-smart/storefront-client/internal/models"
)

func (c *Client) PlaceOrder(ctx context.Context, productID string, req models.PlaceOrderRequest) (*models.OrderConfirmation, error) {
	var out models.OrderConfirmation

	err := c.doJSON(ctx, http.MethodPut, "myInfo/orderThis/"+url.PathEscape(productID), req, false, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) OrderHistory(ctx context.Context) ([]models.Order, error) {
	var out struct {
		OrderHistory []models.Order `json:"orderHistory"`
	}

	if err := c.do(ctx, http.MethodGet, "myInfo/orderHistory", callOptions{}, &out); err != nil {
		return nil, err
	}

	return out.OrderHistory, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, "myInfo/cancelOrder/"+url.PathEscape(orderID), callOptions{}, nil)
}

// AddRatingAndReview submits a review for a delivered product. The body
// nests the review under a "review" key, matching the backend contract.
func (c *Client) AddRatingAndReview(ctx context.Context, productID string, review models.ReviewRequest) error {
	req := struct {
		Review models.ReviewRequest `json:"review"`
	}{Review: review}

	return c.doJSON(ctx, http.MethodPatch, "myInfo/addRatingAndReview/"+url.PathEscape(productID), req, false, nil)
}
