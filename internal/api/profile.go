package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shop-smart/storefront-client/internal/models"
)

func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}

	if err := c.do(ctx, http.MethodGet, "api/user/"+url.PathEscape(userID), callOptions{}, &out); err != nil {
		return nil, err
	}

	return &out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, form models.ProfileUpdateForm) error {
	body, contentType, err := multipartBody(map[string]string{
		"name": form.Name,
	}, map[string]*models.FileUpload{
		"profilePhoto": form.ProfilePhoto,
	})
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPatch, "myInfo/updateProfile/"+url.PathEscape(userID), callOptions{
		body:        body,
		contentType: contentType,
	}, nil)
}
