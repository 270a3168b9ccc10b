package services

import (
	"errors"
	"testing"
	"time"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextBillingDateMonthly(t *testing.T) {
	next, err := NextBillingDate(date(2026, time.March, 10), entities.BillingCycleMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2026, time.April, 10)) {
		t.Fatalf("expected 2026-04-10, got %v", next)
	}
}

func TestNextBillingDateYearly(t *testing.T) {
	next, err := NextBillingDate(date(2026, time.March, 10), entities.BillingCycleYearly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2027, time.March, 10)) {
		t.Fatalf("expected 2027-03-10, got %v", next)
	}
}

func TestNextBillingDateMonthEndNormalizes(t *testing.T) {
	// AddDate normalization: Jan 31 + 1 month lands in March, not Feb 28.
	next, err := NextBillingDate(date(2026, time.January, 31), entities.BillingCycleMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !next.Equal(date(2026, time.March, 3)) {
		t.Fatalf("expected 2026-03-03, got %v", next)
	}
}

func TestNextBillingDateUnknownCycle(t *testing.T) {
	_, err := NextBillingDate(date(2026, time.March, 10), entities.BillingCycle("WEEKLY"))
	if !errors.Is(err, domainerrors.ErrInvalidBillingCycle) {
		t.Fatalf("expected invalid billing cycle, got %v", err)
	}
}

func TestAdvanceOnSettlementPeriodInvoice(t *testing.T) {
	next := date(2026, time.March, 10)
	subscription := entities.Subscription{
		Status:          entities.SubscriptionStatusActive,
		NextBillingDate: &next,
	}
	invoice := entities.Invoice{
		DueDate: date(2026, time.March, 17),
	}

	advanced, ok, err := AdvanceOnSettlement(subscription, invoice, entities.BillingCycleMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected schedule to advance for the period-opening invoice")
	}
	if !advanced.Equal(date(2026, time.April, 10)) {
		t.Fatalf("expected 2026-04-10, got %v", advanced)
	}
}

func TestAdvanceOnSettlementRenewalInvoice(t *testing.T) {
	next := date(2026, time.April, 10)
	subscription := entities.Subscription{
		Status:          entities.SubscriptionStatusActive,
		NextBillingDate: &next,
	}
	// A manual renewal issued mid-period dues a week from issuance and misses
	// the equality against the scheduled date.
	invoice := entities.Invoice{
		DueDate: date(2026, time.March, 22),
	}

	_, ok, err := AdvanceOnSettlement(subscription, invoice, entities.BillingCycleMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected renewal settlement to leave the schedule untouched")
	}
}

func TestAdvanceOnSettlementCanceledSubscription(t *testing.T) {
	subscription := entities.Subscription{Status: entities.SubscriptionStatusCanceled}
	invoice := entities.Invoice{DueDate: date(2026, time.March, 17)}

	_, ok, err := AdvanceOnSettlement(subscription, invoice, entities.BillingCycleMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no advancement without a scheduled date")
	}
}

func TestDateOf(t *testing.T) {
	got := DateOf(time.Date(2026, time.March, 10, 23, 45, 12, 999, time.FixedZone("X", -3600)))
	if !got.Equal(date(2026, time.March, 11)) {
		t.Fatalf("expected UTC calendar date 2026-03-11, got %v", got)
	}
}
