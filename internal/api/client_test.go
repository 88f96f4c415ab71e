package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/testutils"
)

func newClient(t *testing.T, backend *testutils.StubBackend, tokens api.TokenSource, opts ...api.Option) *api.Client {
	t.Helper()

	opts = append([]api.Option{api.WithLogger(testutils.DiscardLogger())}, opts...)

	return api.New(backend.URL(), tokens, opts...)
}

func TestBearerToken(t *testing.T) {
	t.Run("attached to authenticated calls", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)

		var gotAuth string

		backend.Handle(http.MethodGet, "/myInfo/cart", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			testutils.WriteJSON(t, w, http.StatusOK, map[string]any{"cart": []any{}})
		})

		client := newClient(t, backend, testutils.NewMemoryTokenStore("tok-123"))

		// Act
		_, err := client.GetCart(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("omitted from anonymous calls", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)

		var gotAuth string

		backend.Handle(http.MethodGet, "/wareHouse/public/products", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			testutils.WriteJSON(t, w, http.StatusOK, map[string]any{"productData": []any{}})
		})

		client := newClient(t, backend, testutils.NewMemoryTokenStore("tok-123"))

		// Act
		_, err := client.ListProducts(context.Background(), models.ProductFilter{})

		// Assert
		require.NoError(t, err)
		assert.Empty(t, gotAuth)
	})
}

func TestErrorNormalization(t *testing.T) {
	t.Run("server message from error envelope", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.HandleError(http.MethodGet, "/myInfo/orderHistory", http.StatusBadRequest, "No orders yet")

		client := newClient(t, backend, testutils.NewMemoryTokenStore("tok"))

		// Act
		_, err := client.OrderHistory(context.Background())

		// Assert
		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "No orders yet", appErr.Message)
	})

	t.Run("fallback message when envelope is malformed", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.Handle(http.MethodGet, "/myInfo/orderHistory", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>oops</html>"))
		})

		client := newClient(t, backend, testutils.NewMemoryTokenStore("tok"))

		// Act
		_, err := client.OrderHistory(context.Background())

		// Assert
		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeServer, appErr.Code)
		assert.Equal(t, "Something went wrong. Please try again.", appErr.Message)
	})

	t.Run("unreachable backend is a network error", func(t *testing.T) {
		// Arrange
		client := api.New("http://127.0.0.1:1/", testutils.NewMemoryTokenStore("tok"),
			api.WithLogger(testutils.DiscardLogger()))

		// Act
		_, err := client.OrderHistory(context.Background())

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNetwork))
	})
}

func TestSessionExpiry(t *testing.T) {
	t.Run("401 purges the token and fires the hook", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.HandleError(http.MethodGet, "/myInfo/cart", http.StatusUnauthorized, "jwt expired")

		tokens := testutils.NewMemoryTokenStore("stale-token")
		hookFired := 0
		client := newClient(t, backend, tokens, api.WithSessionExpiredHook(func() { hookFired++ }))

		// Act
		_, err := client.GetCart(context.Background())

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionExpired))
		assert.Empty(t, tokens.Token())
		assert.Equal(t, 1, tokens.Purges())
		assert.Equal(t, 1, hookFired)
	})

	t.Run("401 on anonymous call keeps the token", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.HandleError(http.MethodPost, "/api/login", http.StatusUnauthorized, "Invalid credentials")

		tokens := testutils.NewMemoryTokenStore("existing-token")
		client := newClient(t, backend, tokens)

		// Act
		_, err := client.Login(context.Background(), models.LoginRequest{
			Email:    "user@example.com",
			Password: "wrong",
		})

		// Assert
		require.Error(t, err)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeAuth, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
		assert.Equal(t, "existing-token", tokens.Token())
		assert.Zero(t, tokens.Purges())
	})
}

func TestListProductsQuery(t *testing.T) {
	t.Run("only non-zero filter fields serialized", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)

		var gotQuery string

		backend.Handle(http.MethodGet, "/wareHouse/public/products", func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			testutils.WriteJSON(t, w, http.StatusOK, map[string]any{"productData": []models.Product{
				{ID: "p1", ProductName: "Keyboard"},
			}})
		})

		client := newClient(t, backend, testutils.NewMemoryTokenStore(""))

		// Act
		products, err := client.ListProducts(context.Background(), models.ProductFilter{
			Name:      "keyboard",
			MaxPrice:  149.5,
			SortOrder: models.SortAscending,
		})

		// Assert
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Keyboard", products[0].ProductName)
		assert.Contains(t, gotQuery, "name=keyboard")
		assert.Contains(t, gotQuery, "maxPrice=149.5")
		assert.Contains(t, gotQuery, "sortOrder=asc")
		assert.NotContains(t, gotQuery, "minPrice")
		assert.NotContains(t, gotQuery, "category")
	})
}

func TestLogin(t *testing.T) {
	t.Run("returns access token", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.Handle(http.MethodPost, "/api/login", func(w http.ResponseWriter, r *http.Request) {
			var req models.LoginRequest
			testutils.DecodeBody(t, r, &req)
			assert.Equal(t, "user@example.com", req.Email)
			testutils.WriteJSON(t, w, http.StatusOK, map[string]string{"accessToken": "fresh-token"})
		})

		client := newClient(t, backend, testutils.NewMemoryTokenStore(""))

		// Act
		token, err := client.Login(context.Background(), models.LoginRequest{
			Email:    "user@example.com",
			Password: "secret",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token)
	})

	t.Run("empty token is an auth failure", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.HandleJSON(http.MethodPost, "/api/login", map[string]string{})

		client := newClient(t, backend, testutils.NewMemoryTokenStore(""))

		// Act
		_, err := client.Login(context.Background(), models.LoginRequest{
			Email:    "user@example.com",
			Password: "secret",
		})

		// Assert
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAuth))
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("sends payment fields and decodes confirmation", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.Handle(http.MethodPut, "/myInfo/orderThis/prod-1", func(w http.ResponseWriter, r *http.Request) {
			var req models.PlaceOrderRequest
			testutils.DecodeBody(t, r, &req)
			assert.Equal(t, 2, req.Quantity)
			assert.Equal(t, models.PaymentModeOnline, req.PaymentMode)
			assert.Equal(t, "pay_abc", req.PaymentID)
			assert.True(t, req.PaymentStatus)
			testutils.WriteJSON(t, w, http.StatusOK, models.OrderConfirmation{
				OrderID: "ord-9",
				Msg:     "Order placed",
			})
		})

		client := newClient(t, backend, testutils.NewMemoryTokenStore("tok"))

		// Act
		confirmation, err := client.PlaceOrder(context.Background(), "prod-1", models.PlaceOrderRequest{
			Quantity:      2,
			PaymentMode:   models.PaymentModeOnline,
			PaymentID:     "pay_abc",
			PaymentStatus: true,
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "ord-9", confirmation.OrderID)
	})
}

func TestAddRatingAndReview(t *testing.T) {
	t.Run("nests the review payload", func(t *testing.T) {
		// Arrange
		backend := testutils.NewStubBackend(t)
		backend.Handle(http.MethodPatch, "/myInfo/addRatingAndReview/prod-1", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Review models.ReviewRequest `json:"review"`
			}
			testutils.DecodeBody(t, r, &req)
			assert.Equal(t, 4, req.Review.Rating)
			assert.Equal(t, "Solid build", req.Review.Feedback)
			testutils.WriteJSON(t, w, http.StatusOK, map[string]string{"msg": "done"})
		})

		client := newClient(t, backend, testutils.NewMemoryTokenStore("tok"))

		// Act
		err := client.AddRatingAndReview(context.Background(), "prod-1", models.ReviewRequest{
			Rating:   4,
			Feedback: "Solid build",
		})

		// Assert
		require.NoError(t, err)
	})
}
