// Package api is the authenticated HTTP client for the storefront backend.
// It exposes one method per (resource, verb) pair, attaches the bearer token
// to every authenticated call and normalizes error responses into AppErrors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "github.com/shop-smart/storefront-client/internal/errors"
)

// fallbackMessage is shown when the server does not provide one.
const fallbackMessage = "Something went wrong. Please try again."

// TokenSource supplies the persisted bearer token. Purge is invoked when the
// server rejects it with 401, so the stale token never outlives the session.
type TokenSource interface {
	Token() string
	Purge()
}

type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokens           TokenSource
	logger           *slog.Logger
	onSessionExpired func()
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithHTTPClient replaces the underlying client wholesale, transport
// instrumentation included. Mostly useful in tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithSessionExpiredHook registers a callback fired on any 401, after the
// token has been purged. The UI layer uses it to redirect to login.
func WithSessionExpiredHook(hook func()) Option {
	return func(c *Client) { c.onSessionExpired = hook }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		logger:  slog.Default(),
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(newMetricsTransport(nil)),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type callOptions struct {
	query       url.Values
	body        io.Reader
	contentType string
	// anonymous calls never attach the token and never purge it on 401.
	anonymous bool
}

func (c *Client) do(ctx context.Context, method, path string, opt callOptions, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(opt.query) > 0 {
		endpoint += "?" + opt.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, opt.body)
	if err != nil {
		return apperrors.NetworkError(fallbackMessage).WithError(err)
	}

	req.Header.Set("X-Request-ID", uuid.NewString())

	if opt.contentType != "" {
		req.Header.Set("Content-Type", opt.contentType)
	}

	if !opt.anonymous {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)

		return apperrors.NetworkError(fallbackMessage).WithError(err)
	}

	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NetworkError(fallbackMessage).WithError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !opt.anonymous {
		c.tokens.Purge()

		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}

		return apperrors.SessionExpiredError()
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return normalizeError(resp.StatusCode, payload)
	}

	if out != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, out); err != nil {
			return apperrors.ServerError("Unexpected response from server", resp.StatusCode).WithError(err)
		}
	}

	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, anonymous bool, out any) error {
	opt := callOptions{anonymous: anonymous}

	if in != nil {
		body, contentType, err := jsonBody(in)
		if err != nil {
			return err
		}

		opt.body = body
		opt.contentType = contentType
	}

	return c.do(ctx, method, path, opt, out)
}

func jsonBody(in any) (io.Reader, string, error) {
	encoded, err := json.Marshal(in)
	if err != nil {
		return nil, "", apperrors.ValidationError("Invalid request payload").WithError(err)
	}

	return bytes.NewReader(encoded), "application/json", nil
}

// normalizeError maps a non-2xx response onto the client error taxonomy,
// preferring the server-provided message over the generic fallback.
func normalizeError(statusCode int, payload []byte) error {
	message := serverMessage(payload)

	switch {
	case statusCode == http.StatusUnauthorized:
		return apperrors.AuthError(message)
	case statusCode == http.StatusForbidden:
		return apperrors.ForbiddenError(message)
	case statusCode == http.StatusNotFound:
		return apperrors.NotFoundError(message)
	case statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError:
		return apperrors.ValidationError(message)
	default:
		return apperrors.ServerError(message, statusCode)
	}
}

func serverMessage(payload []byte) string {
	var envelope struct {
		Msg string `json:"msg"`
	}

	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Msg != "" {
		return envelope.Msg
	}

	return fallbackMessage
}
