package entities

import "time"

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "CARD"
)

// Payment records one settlement attempt against an invoice. Reference is a
// unique human-readable token. An invoice reaches PAID through exactly one
// SUCCESS payment whose amount equals the invoice amount.
type Payment struct {
	PaymentID   string        `json:"payment_id"`
	InvoiceID   string        `json:"invoice_id"`
	AmountCents int64         `json:"amount_cents"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	PaidAt      time.Time     `json:"paid_at"`
	Reference   string        `json:"reference"`
}
