package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shop-smart/storefront-client/internal/models"
	"github.com/shop-smart/storefront-client/internal/sanitize"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Keyboard", sanitize.Text("<b>Keyboard</b>"))
	assert.Equal(t, "alert", sanitize.Text(" <script>x</script>alert "))
	assert.Equal(t, "plain", sanitize.Text("plain"))
	assert.Empty(t, sanitize.Text("<img src=x onerror=alert(1)>"))
}

func TestReviews(t *testing.T) {
	in := []models.Review{
		{Rating: 5, Feedback: "<i>great</i> value"},
	}

	out := sanitize.Reviews(in)

	assert.Equal(t, "great value", out[0].Feedback)
	// The input slice is left untouched.
	assert.Equal(t, "<i>great</i> value", in[0].Feedback)
}

func TestProduct(t *testing.T) {
	p := sanitize.Product(models.Product{
		ProductName:    "Mouse<script>steal()</script>",
		ProductCompany: "<a href=x>Acme</a>",
		Review:         []models.Review{{Feedback: "<b>nice</b>"}},
	})

	assert.Equal(t, "Mouse", p.ProductName)
	assert.Equal(t, "Acme", p.ProductCompany)
	assert.Equal(t, "nice", p.Review[0].Feedback)
}
