package models

import (
	"encoding/json"
	"time"
)

type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// Product is the catalog record as the backend serves it. The same shape is
// embedded (denormalized) in cart items, wishlist items and orders.
type Product struct {
	ID               string   `json:"_id"`
	ProductName      string   `json:"productName"`
	ProductCompany   string   `json:"productCompany,omitempty"`
	ProductPrice     float64  `json:"productPrice"`
	ProductImage     string   `json:"productImage,omitempty"`
	AvailableOptions []string `json:"AvailableOptions,omitempty"`
	Category         string   `json:"category,omitempty"`
	Stock            int      `json:"stock,omitempty"`
	Review           []Review `json:"review,omitempty"`
}

// Review is a rating left by a buyer. At most one per (user, product) pair,
// enforced server-side; the client re-derives that from the freshest fetched
// list and never caches it.
type Review struct {
	Rating       int       `json:"rating"`
	Feedback     string    `json:"feedback"`
	FeedbackDate time.Time `json:"feedbackDate,omitzero"`
	RatedBy      RatedBy   `json:"ratedBy"`
}

// RatedBy is sometimes a bare user id and sometimes a populated user record,
// depending on which endpoint produced the review list.
type RatedBy struct {
	UserID string
}

func (r *RatedBy) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.UserID = id

		return nil
	}

	var populated struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &populated); err != nil {
		return err
	}

	r.UserID = populated.ID

	return nil
}

func (r RatedBy) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.UserID)
}

// ReviewedBy reports whether the review list contains an entry left by the
// given user.
func (p Product) ReviewedBy(userID string) bool {
	for _, review := range p.Review {
		if review.RatedBy.UserID == userID {
			return true
		}
	}

	return false
}

// ProductFilter is the catalog query state. Zero-valued fields are omitted
// from the query string.
type ProductFilter struct {
	Name      string
	Category  string
	MinPrice  float64
	MaxPrice  float64
	SortOrder SortOrder
}

// ProductForm is the seller/admin create/edit form, submitted as multipart
// form data. Name, price and image are required before any network call.
type ProductForm struct {
	ProductName      string      `validate:"required"`
	ProductCompany   string      `validate:"omitempty"`
	ProductPrice     float64     `validate:"required,gt=0"`
	AvailableOptions string      `validate:"omitempty"`
	Category         string      `validate:"omitempty"`
	Stock            int         `validate:"omitempty,gte=0"`
	ProductImage     *FileUpload `validate:"required"`
}
