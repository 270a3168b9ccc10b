package entities

import "time"

type InvoiceStatus string

const (
	InvoiceStatusOpen InvoiceStatus = "OPEN"
	InvoiceStatusPaid InvoiceStatus = "PAID"
)

// InvoiceDueDays is the fixed offset between an invoice's issue date and its
// due date. The settlement advancement rule depends on this offset.
const InvoiceDueDays = 7

// Invoice bills one period (or one manual renewal) of a subscription.
// AmountCents is a snapshot of the plan price at issuance; later plan price
// changes never alter an already-issued invoice. Status only moves
// OPEN -> PAID, never back.
type Invoice struct {
	InvoiceID      string        `json:"invoice_id"`
	SubscriptionID string        `json:"subscription_id"`
	AmountCents    int64         `json:"amount_cents"`
	Status         InvoiceStatus `json:"status"`
	IssuedAt       time.Time     `json:"issued_at"`
	DueDate        time.Time     `json:"due_date"`
}
