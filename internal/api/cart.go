package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shop-smart/storefront-client/internal/models"
)

type cartEnvelope struct {
	Cart []models.CartItem `json:"cart"`
}

func (c *Client) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var out cartEnvelope

	if err := c.do(ctx, http.MethodGet, "myInfo/cart", callOptions{}, &out); err != nil {
		return nil, err
	}

	return out.Cart, nil
}

// AddToCart puts one unit of the product in the cart and returns the
// server's confirmed collection, which replaces local state wholesale.
func (c *Client) AddToCart(ctx context.Context, productID string) ([]models.CartItem, error) {
	var out cartEnvelope

	if err := c.do(ctx, http.MethodPut, "myInfo/addToCart/"+url.PathEscape(productID), callOptions{}, &out); err != nil {
		return nil, err
	}

	return out.Cart, nil
}

// UpdateCartQuantity commits the final quantity of an item. Quantity zero is
// not valid here; the synchronizer turns it into a remove.
func (c *Client) UpdateCartQuantity(ctx context.Context, productID string, quantity int) ([]models.CartItem, error) {
	req := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	body, contentType, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	var out cartEnvelope

	err = c.do(ctx, http.MethodPatch, "myInfo/addToCart/"+url.PathEscape(productID), callOptions{
		body:        body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out.Cart, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID string) ([]models.CartItem, error) {
	var out cartEnvelope

	if err := c.do(ctx, http.MethodDelete, "myInfo/removeFromCart/"+url.PathEscape(productID), callOptions{}, &out); err != nil {
		return nil, err
	}

	return out.Cart, nil
}
