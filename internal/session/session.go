// Package session owns the authenticated identity. Identity and role are
// decoded locally from the bearer token; the profile record is fetched from
// the server after the session is established.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/validate"
)

// TokenStore persists the bearer token across restarts.
type TokenStore interface {
	Token() string
	Save(token string) error
	Purge()
}

type Manager struct {
	api    *api.Client
	tokens TokenStore
	logger *slog.Logger

	mu      sync.RWMutex
	current models.Session
	profile *models.User
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

func NewManager(apiClient *api.Client, tokens TokenStore, opts ...Option) *Manager {
	m := &Manager{
		api:    apiClient,
		tokens: tokens,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Restore rebuilds the session from the persisted token without a server
// round trip. A token that fails to decode is discarded and the session
// stays anonymous; that is not an error. On success a profile fetch is
// started in the background.
func (m *Manager) Restore(ctx context.Context) {
	token := m.tokens.Token()
	if token == "" {
		m.reset()

		return
	}

	claims, err := decodeClaims(token)
	if err != nil {
		m.logger.Warn("discarding undecodable token", slog.String("error", err.Error()))
		m.tokens.Purge()
		m.reset()

		return
	}

	m.setSession(models.Session{UserID: claims.UserID, Role: claims.Role, Token: token})

	go m.fetchProfile(context.WithoutCancel(ctx))
}

// Login exchanges credentials for a token, persists it and decodes it
// exactly as Restore does.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	req := models.LoginRequest{Email: email, Password: password}

	if err := validate.Struct(req); err != nil {
		return err
	}

	token, err := m.api.Login(ctx, req)
	if err != nil {
		return err
	}

	if err := m.tokens.Save(token); err != nil {
		return apperrors.AuthError("Could not persist the session").WithError(err)
	}

	claims, err := decodeClaims(token)
	if err != nil {
		m.tokens.Purge()

		return apperrors.AuthError("Received a malformed token").WithError(err)
	}

	m.setSession(models.Session{UserID: claims.UserID, Role: claims.Role, Token: token})

	go m.fetchProfile(context.WithoutCancel(ctx))

	return nil
}

// Logout discards the token and resets to anonymous. No server call.
func (m *Manager) Logout() {
	m.tokens.Purge()
	m.reset()
}

func (m *Manager) Current() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current
}

func (m *Manager) Profile() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.profile == nil {
		return nil
	}

	profile := *m.profile

	return &profile
}

// RefreshProfile fetches the profile record synchronously, surfacing errors
// to the caller. The background path logs and swallows them instead.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	current := m.Current()
	if !current.Authenticated() {
		return apperrors.AuthError("Please login to view your profile")
	}

	user, err := m.api.GetUser(ctx, current.UserID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.profile = user
	m.mu.Unlock()

	return nil
}

// UpdateProfile submits the profile form, then re-fetches the record so the
// in-memory copy reflects what the server actually stored.
func (m *Manager) UpdateProfile(ctx context.Context, form models.ProfileUpdateForm) error {
	current := m.Current()
	if !current.Authenticated() {
		return apperrors.AuthError("Please login to update your profile")
	}

	if err := validate.Struct(form); err != nil {
		return err
	}

	if err := m.api.UpdateProfile(ctx, current.UserID, form); err != nil {
		return err
	}

	if err := m.RefreshProfile(ctx); err != nil {
		m.logger.Warn("profile refresh after update failed", slog.String("error", err.Error()))
	}

	return nil
}

func (m *Manager) fetchProfile(ctx context.Context) {
	if err := m.RefreshProfile(ctx); err != nil {
		m.logger.Warn("background profile fetch failed", slog.String("error", err.Error()))
	}
}

func (m *Manager) setSession(s models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = s
	m.profile = nil
}

func (m *Manager) reset() {
	m.setSession(models.Session{})
}

// decodeClaims parses the token payload without verifying the signature.
// The client has no signing key; the server re-validates every request.
func decodeClaims(token string) (*models.Claims, error) {
	claims := &models.Claims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	if claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
