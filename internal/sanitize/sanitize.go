// Package sanitize strips markup from server-supplied rich text before it
// reaches a display surface. Review feedback and product fields are authored
// by other users and pass through the backend unescaped.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/shop-smart/storefront-client/internal/models"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}

// Reviews returns a copy of in with every feedback text sanitized.
func Reviews(in []models.Review) []models.Review {
	if len(in) == 0 {
		return in
	}

	out := make([]models.Review, len(in))
	copy(out, in)

	for i := range out {
		out[i].Feedback = Text(out[i].Feedback)
	}

	return out
}

// Product sanitizes the user-authored text fields of a product record.
func Product(p models.Product) models.Product {
	p.ProductName = Text(p.ProductName)
	p.ProductCompany = Text(p.ProductCompany)
	p.Review = Reviews(p.Review)

	return p
}
