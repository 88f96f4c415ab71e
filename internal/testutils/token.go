package testutils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/shop-smart/storefront-client/internal/models"
)

// SignTestToken mints an HS256 token carrying the given user and role,
// valid for an hour. The signing key is irrelevant to the client, which
// only decodes claims, but the token must still be structurally valid.
func SignTestToken(t *testing.T, userID string, role models.Role) string {
	t.Helper()

	claims := &models.Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}
