package store_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shop-smart/storefront-client/internal/api"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/session"
	"github.com/shop-smart/storefront-client/internal/testutils"
)

const testUserID = "user-1"

func newAPIClient(t *testing.T, backend *testutils.StubBackend, token string) *api.Client {
	t.Helper()

	return api.New(backend.URL(), testutils.NewMemoryTokenStore(token),
		api.WithLogger(testutils.DiscardLogger()))
}

// signedInSession restores a session for testUserID with the given role.
// The background profile fetch is served so the stub never sees an
// unexpected request.
func signedInSession(t *testing.T, backend *testutils.StubBackend, role models.Role) (*api.Client, *session.Manager) {
	t.Helper()

	token := testutils.SignTestToken(t, testUserID, role)
	tokens := testutils.NewMemoryTokenStore(token)

	backend.HandleJSON(http.MethodGet, "/api/user/"+testUserID, map[string]any{
		"user": models.User{ID: testUserID, Name: "Asha", Role: role},
	})

	client := api.New(backend.URL(), tokens, api.WithLogger(testutils.DiscardLogger()))
	manager := session.NewManager(client, tokens, session.WithLogger(testutils.DiscardLogger()))
	manager.Restore(context.Background())

	return client, manager
}

func anonymousSession(t *testing.T, backend *testutils.StubBackend) (*api.Client, *session.Manager) {
	t.Helper()

	tokens := testutils.NewMemoryTokenStore("")
	client := api.New(backend.URL(), tokens, api.WithLogger(testutils.DiscardLogger()))
	manager := session.NewManager(client, tokens, session.WithLogger(testutils.DiscardLogger()))
	manager.Restore(context.Background())

	return client, manager
}

func product(id, name string, price float64) models.Product {
	return models.Product{ID: id, ProductName: name, ProductPrice: price}
}

func cartPayload(items ...models.CartItem) map[string]any {
	return map[string]any{"cart": items}
}
