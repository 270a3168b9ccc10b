// Package gateway adapts external payment providers to the billing
// PaymentProcessor port.
package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"billcore/contexts/billing/billing-service/domain/entities"
	"billcore/contexts/billing/billing-service/ports"
)

// StubProcessor settles every invoice successfully by card for the full
// invoice amount. It stands in for a real provider integration; swapping it
// out only requires another PaymentProcessor implementation.
type StubProcessor struct {
	IDGenerator ports.IDGenerator
}

func (p StubProcessor) Settle(ctx context.Context, invoice entities.Invoice, now time.Time) (entities.Payment, error) {
	id, err := p.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Payment{}, err
	}
	return entities.Payment{
		PaymentID:   "pay_" + id,
		InvoiceID:   invoice.InvoiceID,
		AmountCents: invoice.AmountCents,
		Method:      entities.PaymentMethodCard,
		Status:      entities.PaymentStatusSuccess,
		PaidAt:      now,
		Reference:   newReference(),
	}, nil
}

// newReference mints the short human-readable settlement token printed on
// receipts, e.g. PAY-9F3A27C1.
func newReference() string {
	return "PAY-" + strings.ToUpper(uuid.NewString()[:8])
}
