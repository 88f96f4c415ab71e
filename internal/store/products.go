package store

import (
	"context"
	"log/slog"

	"github.com/shop-smart/storefront-client/internal/api"
	apperrors "github.com/shop-smart/storefront-client/internal/errors"
	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/session"
	"github.com/shop-smart/storefront-client/internal/validate"
)

// ProductManager is the seller/admin side of the catalog: create, edit and
// delete entries. The role gate and form validation both run before any
// network call; the server enforces the role again on its side.
type ProductManager struct {
	api      *api.Client
	sessions *session.Manager
	logger   *slog.Logger
}

func NewProductManager(apiClient *api.Client, sessions *session.Manager, logger *slog.Logger) *ProductManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &ProductManager{
		api:      apiClient,
		sessions: sessions,
		logger:   logger,
	}
}

// Save creates the product when productID is empty and edits it otherwise.
// Missing name, price or image blocks submission with a validation message.
func (m *ProductManager) Save(ctx context.Context, productID string, form models.ProductForm) error {
	if err := m.requireManager(); err != nil {
		return err
	}

	if err := validate.Struct(form); err != nil {
		return apperrors.ValidationError("Please fill in all required fields (Name, Price, and Image)").WithError(err)
	}

	if productID == "" {
		return m.api.AddProduct(ctx, form)
	}

	return m.api.EditProduct(ctx, productID, form)
}

func (m *ProductManager) Delete(ctx context.Context, productID string) error {
	if err := m.requireManager(); err != nil {
		return err
	}

	return m.api.DeleteProduct(ctx, productID)
}

func (m *ProductManager) requireManager() error {
	current := m.sessions.Current()

	if !current.Authenticated() {
		return apperrors.AuthError("Please login to manage products")
	}

	if !current.Role.CanManageProducts() {
		return apperrors.ForbiddenError("Only sellers and admins can manage products")
	}

	return nil
}
