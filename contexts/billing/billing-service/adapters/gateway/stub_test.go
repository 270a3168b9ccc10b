package gateway

import (
	"context"
	"strings"
	"testing"
	"time"

	"billcore/contexts/billing/billing-service/domain/entities"
)

type staticIDs struct{}

func (staticIDs) NewID(_ context.Context) (string, error) { return "abc123", nil }

func TestStubProcessorSettles(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	invoice := entities.Invoice{
		InvoiceID:   "inv_1",
		AmountCents: 1000,
		Status:      entities.InvoiceStatusOpen,
	}

	payment, err := StubProcessor{IDGenerator: staticIDs{}}.Settle(context.Background(), invoice, now)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if payment.PaymentID != "pay_abc123" {
		t.Fatalf("unexpected payment id %q", payment.PaymentID)
	}
	if payment.Status != entities.PaymentStatusSuccess || payment.Method != entities.PaymentMethodCard {
		t.Fatalf("unexpected settlement outcome: %+v", payment)
	}
	if payment.AmountCents != invoice.AmountCents {
		t.Fatalf("expected full invoice amount, got %d", payment.AmountCents)
	}
	if !payment.PaidAt.Equal(now) {
		t.Fatalf("expected paid_at %v, got %v", now, payment.PaidAt)
	}
}

func TestReferenceShape(t *testing.T) {
	ref := newReference()
	if !strings.HasPrefix(ref, "PAY-") || len(ref) != len("PAY-")+8 {
		t.Fatalf("unexpected reference shape %q", ref)
	}
	if ref != strings.ToUpper(ref) {
		t.Fatalf("expected uppercase reference, got %q", ref)
	}
}
