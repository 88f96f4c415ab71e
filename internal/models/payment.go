package models

// PaymentOrder is the payment-intent descriptor the backend mints for an
// online checkout. It is consumed by the external payment widget; the client
// never talks to the processor directly. Amount is in the smallest currency
// unit, as the processor expects.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type CreatePaymentOrderRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
