package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shop-smart/storefront-client/internal/models"
)

func (c *Client) GetWishList(ctx context.Context) ([]models.WishListItem, error) {
	var out struct {
		WishList []models.WishListItem `json:"wishList"`
	}

	if err := c.do(ctx, http.MethodGet, "myInfo/wishList", callOptions{}, &out); err != nil {
		return nil, err
	}

	return out.WishList, nil
}

func (c *Client) AddToWishList(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodPatch, "myInfo/addToWishList/"+url.PathEscape(productID), callOptions{}, nil)
}

func (c *Client) RemoveFromWishList(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "myInfo/removeFromWishList/"+url.PathEscape(productID), callOptions{}, nil)
}
