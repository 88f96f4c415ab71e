package api

import (
	"context"
	"net/http"
	"net/url"

	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
)

// Login exchanges credentials for a bearer token. Rejections carry the
// server's message re-coded as an auth failure.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var out struct {
		AccessToken string `json:"accessToken"`
	}

	err := c.doJSON(ctx, http.MethodPost, "api/login", req, true, &out)
	if err != nil {
		if appErr, ok := apperrors.IsAppError(err); ok && appErr.Code != apperrors.ErrCodeNetwork {
			return "", apperrors.AuthError(appErr.Message).WithError(err)
		}

		return "", err
	}

	if out.AccessToken == "" {
		return "", apperrors.AuthError(fallbackMessage)
	}

	return out.AccessToken, nil
}

// Signup registers a new account. The profile photo travels as a multipart
// attachment alongside the text fields.
func (c *Client) Signup(ctx context.Context, form models.SignupForm) error {
	body, contentType, err := multipartBody(map[string]string{
		"name":     form.Name,
		"email":    form.Email,
		"password": form.Password,
		"role":     string(form.Role),
	}, map[string]*models.FileUpload{
		"profilePhoto": form.ProfilePhoto,
	})
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, "api/signup", callOptions{
		body:        body,
		contentType: contentType,
		anonymous:   true,
	}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := struct {
		Email string `json:"email"`
	}{Email: email}

	return c.doJSON(ctx, http.MethodPost, "api/forgotPassword", req, true, nil)
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	req := struct {
		Password string `json:"password"`
	}{Password: newPassword}

	opt := callOptions{
		query:     url.Values{"token": []string{resetToken}},
		anonymous: true,
	}

	encoded, contentType, err := jsonBody(req)
	if err != nil {
		return err
	}

	opt.body = encoded
	opt.contentType = contentType

	return c.do(ctx, http.MethodPut, "api/resetPassword", opt, nil)
}
