package models

import "time"

// CartItem carries a denormalized product snapshot; the server owns the
// authoritative collection and returns it whole after every mutation.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return i.Product.ProductPrice * float64(i.Quantity)
}

// CartTotal sums price × quantity over the given items. Always computed
// from a server-returned collection, never from stale local arithmetic.
func CartTotal(items []CartItem) float64 {
	var total float64

	for _, item := range items {
		total += item.LineTotal()
	}

	return total
}

type WishListItem struct {
	Product   Product   `json:"product"`
	AddedDate time.Time `json:"addedDate,omitzero"`
}
