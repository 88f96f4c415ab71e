package models

import "time"

type OrderStatus string

type PaymentMode string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentModeOnline PaymentMode = "online"
	PaymentModeCOD    PaymentMode = "cod"
)

type Order struct {
	ID            string      `json:"_id"`
	Product       Product     `json:"product"`
	Quantity      int         `json:"quantity"`
	TotalAmount   float64     `json:"totalAmount"`
	PaymentMode   PaymentMode `json:"paymentMode"`
	PaymentStatus bool        `json:"paymentStatus"`
	OrderStatus   OrderStatus `json:"orderStatus"`
	TrackingID    string      `json:"trackingId,omitempty"`
	PaymentID     string      `json:"paymentId,omitempty"`
	OrderedAt     time.Time   `json:"orderedAt,omitzero"`
	DeliveredAt   *time.Time  `json:"deliveredAt,omitempty"`
}

// Cancellable reports whether the user may still request cancellation.
// Status transitions themselves happen server-side.
func (o Order) Cancellable() bool {
	return o.OrderStatus == OrderStatusPending || o.OrderStatus == OrderStatusConfirmed
}

// PlaceOrderRequest is the body of the order-placement call. PaymentID is
// empty for cash on delivery.
type PlaceOrderRequest struct {
	Quantity      int         `json:"quantity" validate:"required,min=1"`
	PaymentMode   PaymentMode `json:"paymentMode" validate:"required,oneof=online cod"`
	PaymentID     string      `json:"paymentId,omitempty"`
	PaymentStatus bool        `json:"paymentStatus"`
}

// OrderConfirmation is what the backend returns once an order is placed.
type OrderConfirmation struct {
	OrderID string `json:"orderId"`
	Msg     string `json:"msg,omitempty"`
}

type ReviewRequest struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"required"`
}
