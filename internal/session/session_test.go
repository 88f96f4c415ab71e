package session_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/session"
	"github.com/shop-smart/storefront-client/internal/testutils"
)

func newManager(t *testing.T, backend *testutils.StubBackend, tokens *testutils.MemoryTokenStore) *session.Manager {
	t.Helper()

	client := api.New(backend.URL(), tokens, api.WithLogger(testutils.DiscardLogger()))

	return session.NewManager(client, tokens, session.WithLogger(testutils.DiscardLogger()))
}

func handleUser(t *testing.T, backend *testutils.StubBackend, userID, name string) {
	t.Helper()

	backend.HandleJSON(http.MethodGet, "/api/user/"+userID, map[string]any{
		"user": models.User{ID: userID, Name: name, Role: models.RoleUser},
	})
}

func waitForProfile(t *testing.T, m *session.Manager) *models.User {
	t.Helper()

	deadline := time.After(2 * time.Second)

	for {
		if profile := m.Profile(); profile != nil {
			return profile
		}

		select {
		case <-deadline:
			t.Fatal("profile was never populated")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRestore(t *testing.T) {
	t.Run("valid token restores identity and fetches profile", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		handleUser(t, backend, "user-1", "Asha")

		token := testutils.SignTestToken(t, "user-1", models.RoleUser)
		tokens := testutils.NewMemoryTokenStore(token)
		manager := newManager(t, backend, tokens)

		// Act
		manager.Restore(context.Background())

		// Assert
		current := manager.Current()
		assert.True(t, current.Authenticated())
		assert.Equal(t, "user-1", current.UserID)
		assert.Equal(t, models.RoleUser, current.Role)

		profile := waitForProfile(t, manager)
		assert.Equal(t, "Asha", profile.Name)
	})

	t.Run("garbage token is purged and the session stays anonymous", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		tokens := testutils.NewMemoryTokenStore("not-a-jwt")
		manager := newManager(t, backend, tokens)

		// Act
		manager.Restore(context.Background())

		// Assert
		assert.False(t, manager.Current().Authenticated())
		assert.Empty(t, tokens.Token())
		assert.Equal(t, 1, tokens.Purges())
		assert.Zero(t, backend.TotalCalls())
	})

	t.Run("missing token is anonymous without purging", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		tokens := testutils.NewMemoryTokenStore("")
		manager := newManager(t, backend, tokens)

		// Act
		manager.Restore(context.Background())

		// Assert
		assert.False(t, manager.Current().Authenticated())
		assert.Zero(t, tokens.Purges())
	})
}

func TestLogin(t *testing.T) {
	t.Run("persists the token and decodes identity", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		token := testutils.SignTestToken(t, "user-7", models.RoleSeller)
		backend.HandleJSON(http.MethodPost, "/api/login", map[string]string{"accessToken": token})
		handleUser(t, backend, "user-7", "Ravi")

		tokens := testutils.NewMemoryTokenStore("")
		manager := newManager(t, backend, tokens)

		// Act
		err := manager.Login(context.Background(), "seller@example.com", "secret")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, token, tokens.Token())

		current := manager.Current()
		assert.Equal(t, "user-7", current.UserID)
		assert.Equal(t, models.RoleSeller, current.Role)
	})

	t.Run("rejects invalid input before any network call", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		manager := newManager(t, backend, testutils.NewMemoryTokenStore(""))

		// Act
		err := manager.Login(context.Background(), "not-an-email", "")

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
		assert.Zero(t, backend.TotalCalls())
	})

	t.Run("malformed token from server is purged", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.HandleJSON(http.MethodPost, "/api/login", map[string]string{"accessToken": "broken.token"})

		tokens := testutils.NewMemoryTokenStore("")
		manager := newManager(t, backend, tokens)

		// Act
		err := manager.Login(context.Background(), "user@example.com", "secret")

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAuth))
		assert.False(t, manager.Current().Authenticated())
		assert.Equal(t, 1, tokens.Purges())
	})
}

func TestLogout(t *testing.T) {
	t.Run("discards token and resets to anonymous", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		handleUser(t, backend, "user-1", "Asha")

		token := testutils.SignTestToken(t, "user-1", models.RoleUser)
		tokens := testutils.NewMemoryTokenStore(token)
		manager := newManager(t, backend, tokens)
		manager.Restore(context.Background())
		require.True(t, manager.Current().Authenticated())

		// Act
		manager.Logout()

		// Assert
		assert.False(t, manager.Current().Authenticated())
		assert.Empty(t, tokens.Token())
		assert.Nil(t, manager.Profile())
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("requires an authenticated session", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		manager := newManager(t, backend, testutils.NewMemoryTokenStore(""))

		// Act
		err := manager.UpdateProfile(context.Background(), models.ProfileUpdateForm{Name: "Asha"})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAuth))
		assert.Zero(t, backend.TotalCalls())
	})

	t.Run("submits form and refreshes the profile", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		handleUser(t, backend, "user-1", "Asha Kumar")
		backend.HandleJSON(http.MethodPatch, "/myInfo/updateProfile/user-1", map[string]string{"msg": "updated"})

		token := testutils.SignTestToken(t, "user-1", models.RoleUser)
		tokens := testutils.NewMemoryTokenStore(token)
		manager := newManager(t, backend, tokens)
		manager.Restore(context.Background())

		// Act
		err := manager.UpdateProfile(context.Background(), models.ProfileUpdateForm{Name: "Asha Kumar"})

		// Assert
		require.NoError(t, err)
		profile := waitForProfile(t, manager)
		assert.Equal(t, "Asha Kumar", profile.Name)
		assert.Equal(t, 1, backend.Calls(http.MethodPatch, "/myInfo/updateProfile/user-1"))
	})
}
