package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shop-smart/storefront-client/internal/models"
)

// ListProducts queries the public listing endpoint. Only non-zero filter
// fields are serialized as query parameters.
func (c *Client) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := url.Values{}

	if filter.Name != "" {
		query.Set("name", filter.Name)
	}

	if filter.Category != "" {
		query.Set("category", filter.Category)
	}

	if filter.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}

	if filter.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}

	if filter.SortOrder != "" {
		query.Set("sortOrder", string(filter.SortOrder))
	}

	var out struct {
		ProductData []models.Product `json:"productData"`
	}

	err := c.do(ctx, http.MethodGet, "wareHouse/public/products", callOptions{
		query:     query,
		anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}

	return out.ProductData, nil
}

func (c *Client) ProductDetails(ctx context.Context, productID string) (*models.Product, error) {
	var out struct {
		Product models.Product `json:"product"`
	}

	if err := c.do(ctx, http.MethodGet, "wareHouse/productDetails/"+url.PathEscape(productID), callOptions{}, &out); err != nil {
		return nil, err
	}

	return &out.Product, nil
}

// AddProduct creates a catalog entry. Seller/admin only; the server enforces
// the role, the client merely gates the affordance.
func (c *Client) AddProduct(ctx context.Context, form models.ProductForm) error {
	body, contentType, err := productFormBody(form)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPost, "wareHouse/addProduct", callOptions{
		body:        body,
		contentType: contentType,
	}, nil)
}

func (c *Client) EditProduct(ctx context.Context, productID string, form models.ProductForm) error {
	body, contentType, err := productFormBody(form)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodPut, "wareHouse/editProduct/"+url.PathEscape(productID), callOptions{
		body:        body,
		contentType: contentType,
	}, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "wareHouse/deleteProduct/"+url.PathEscape(productID), callOptions{}, nil)
}

func productFormBody(form models.ProductForm) (io.Reader, string, error) {
	return multipartBody(map[string]string{
		"productName":      form.ProductName,
		"productCompany":   form.ProductCompany,
		"productPrice":     strconv.FormatFloat(form.ProductPrice, 'f', -1, 64),
		"AvailableOptions": form.AvailableOptions,
		"stock":            strconv.Itoa(form.Stock),
		"category":         form.Category,
	}, map[string]*models.FileUpload{
		"productImage": form.ProductImage,
	})
}
