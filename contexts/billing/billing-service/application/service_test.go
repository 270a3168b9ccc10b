package application

import (
	"context"
	"errors"
	"testing"
	"time"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/billing/billing-service/adapters/gateway"
	"billcore/contexts/billing/billing-service/adapters/memory"
	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
	"billcore/contexts/billing/billing-service/domain/services"
	"billcore/contexts/billing/billing-service/ports"
)

var (
	adminCaller = accesspolicy.Identity{ID: "admin_1", DisplayName: "Admin", Email: "admin@example.com", Admin: true}
	plainCaller = accesspolicy.Identity{ID: "user_1", DisplayName: "Ada", Email: "ada@example.com"}
	otherCaller = accesspolicy.Identity{ID: "user_2", DisplayName: "Grace", Email: "grace@example.com"}
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return Service{
		Repo:        store,
		Plans:       store,
		Processor:   gateway.StubProcessor{IDGenerator: store},
		Idempotency: store,
		Clock:       fixedClock{now: testNow},
		IDGenerator: store,
	}, store
}

func mustSubscribe(t *testing.T, service Service, identity accesspolicy.Identity, key string) ports.SubscriptionView {
	t.Helper()
	view, err := service.CreateSubscription(context.Background(), identity, key, ports.CreateSubscriptionInput{
		PlanID: "plan_starter_monthly",
	})
	if err != nil {
		t.Fatalf("create subscription failed: %v", err)
	}
	return view
}

func firstInvoice(t *testing.T, service Service, identity accesspolicy.Identity) entities.Invoice {
	t.Helper()
	invoices, err := service.GetInvoicesFor(context.Background(), identity, "")
	if err != nil {
		t.Fatalf("list invoices failed: %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("expected exactly one invoice, got %d", len(invoices))
	}
	return invoices[0]
}

func TestCreateSubscriptionIssuesFirstInvoice(t *testing.T) {
	service, _ := newService(t)

	view := mustSubscribe(t, service, plainCaller, "k1")
	sub := view.Subscription
	if sub.Status != entities.SubscriptionStatusActive {
		t.Fatalf("expected ACTIVE, got %s", sub.Status)
	}
	start := services.DateOf(testNow)
	if !sub.StartDate.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, sub.StartDate)
	}
	if sub.NextBillingDate == nil || !sub.NextBillingDate.Equal(start.AddDate(0, 1, 0)) {
		t.Fatalf("expected next billing date %v, got %v", start.AddDate(0, 1, 0), sub.NextBillingDate)
	}
	if view.Customer.OwnerID != plainCaller.ID || view.Customer.Email != plainCaller.Email {
		t.Fatalf("expected auto-provisioned customer for caller, got %+v", view.Customer)
	}

	invoice := firstInvoice(t, service, plainCaller)
	if invoice.Status != entities.InvoiceStatusOpen {
		t.Fatalf("expected OPEN invoice, got %s", invoice.Status)
	}
	if invoice.AmountCents != 1000 {
		t.Fatalf("expected snapshot of plan price 1000, got %d", invoice.AmountCents)
	}
	if !invoice.DueDate.Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("expected due date %v, got %v", start.AddDate(0, 0, 7), invoice.DueDate)
	}
}

func TestCreateSubscriptionRequiresIdempotencyKey(t *testing.T) {
	service, _ := newService(t)

	_, err := service.CreateSubscription(context.Background(), plainCaller, "  ", ports.CreateSubscriptionInput{
		PlanID: "plan_starter_monthly",
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyRequired) {
		t.Fatalf("expected idempotency key required, got %v", err)
	}
}

func TestCreateSubscriptionReplaysOnSameKey(t *testing.T) {
	service, _ := newService(t)

	first := mustSubscribe(t, service, plainCaller, "k1")
	second := mustSubscribe(t, service, plainCaller, "k1")
	if first.Subscription.SubscriptionID != second.Subscription.SubscriptionID {
		t.Fatalf("expected replayed subscription, got %s and %s",
			first.Subscription.SubscriptionID, second.Subscription.SubscriptionID)
	}

	views, err := service.GetSubscriptionsFor(context.Background(), plainCaller, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one subscription after replay, got %d", len(views))
	}
}

func TestIdempotencyKeyReuseConflicts(t *testing.T) {
	service, _ := newService(t)

	mustSubscribe(t, service, plainCaller, "k1")
	_, err := service.CreateSubscription(context.Background(), plainCaller, "k1", ports.CreateSubscriptionInput{
		PlanID: "plan_starter_yearly",
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
}

func TestCreateSubscriptionInactivePlan(t *testing.T) {
	service, _ := newService(t)

	_, err := service.CreateSubscription(context.Background(), plainCaller, "k1", ports.CreateSubscriptionInput{
		PlanID: "plan_legacy_monthly",
	})
	if !errors.Is(err, domainerrors.ErrPlanInactive) {
		t.Fatalf("expected inactive plan rejection, got %v", err)
	}

	views, err := service.GetSubscriptionsFor(context.Background(), plainCaller, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected no subscription created, got %d", len(views))
	}
}

func TestCreateSubscriptionUnknownPlan(t *testing.T) {
	service, _ := newService(t)

	_, err := service.CreateSubscription(context.Background(), plainCaller, "k1", ports.CreateSubscriptionInput{
		PlanID: "plan_ghost",
	})
	if !errors.Is(err, domainerrors.ErrPlanNotFound) {
		t.Fatalf("expected plan not found, got %v", err)
	}
}

func TestPayFirstInvoiceSettlesWithoutAdvancing(t *testing.T) {
	service, _ := newService(t)

	view := mustSubscribe(t, service, plainCaller, "k1")
	invoice := firstInvoice(t, service, plainCaller)

	payment, err := service.PayInvoice(context.Background(), plainCaller, "k2", invoice.InvoiceID)
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}
	if payment.Status != entities.PaymentStatusSuccess || payment.AmountCents != invoice.AmountCents {
		t.Fatalf("unexpected payment: %+v", payment)
	}

	paid, err := service.GetInvoiceByID(context.Background(), plainCaller, invoice.InvoiceID)
	if err != nil {
		t.Fatalf("reload invoice failed: %v", err)
	}
	if paid.Status != entities.InvoiceStatusPaid {
		t.Fatalf("expected PAID invoice, got %s", paid.Status)
	}

	// The first invoice dues a week after the start date, so its period start
	// equals the start date, not the scheduled next billing date. The schedule
	// stays put.
	reloaded, err := service.Repo.GetSubscription(context.Background(), view.Subscription.SubscriptionID)
	if err != nil {
		t.Fatalf("reload subscription failed: %v", err)
	}
	if reloaded.NextBillingDate == nil || !reloaded.NextBillingDate.Equal(*view.Subscription.NextBillingDate) {
		t.Fatalf("expected schedule unchanged at %v, got %v",
			view.Subscription.NextBillingDate, reloaded.NextBillingDate)
	}
}

func TestPayPeriodOpeningInvoiceAdvancesSchedule(t *testing.T) {
	service, store := newService(t)

	view := mustSubscribe(t, service, plainCaller, "k1")
	scheduled := *view.Subscription.NextBillingDate

	// An invoice issued at the scheduled billing date dues a week later, so
	// its due date minus the offset matches the schedule exactly.
	invoice := entities.Invoice{
		InvoiceID:      "inv_period",
		SubscriptionID: view.Subscription.SubscriptionID,
		AmountCents:    1000,
		Status:         entities.InvoiceStatusOpen,
		IssuedAt:       scheduled,
		DueDate:        scheduled.AddDate(0, 0, entities.InvoiceDueDays),
	}
	if err := store.AddInvoice(context.Background(), invoice); err != nil {
		t.Fatalf("seed invoice failed: %v", err)
	}

	if _, err := service.PayInvoice(context.Background(), plainCaller, "k2", invoice.InvoiceID); err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	reloaded, err := store.GetSubscription(context.Background(), view.Subscription.SubscriptionID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	want := scheduled.AddDate(0, 1, 0)
	if reloaded.NextBillingDate == nil || !reloaded.NextBillingDate.Equal(want) {
		t.Fatalf("expected schedule advanced to %v, got %v", want, reloaded.NextBillingDate)
	}
}

func TestPayInvoiceTwiceReportsNotFound(t *testing.T) {
	service, _ := newService(t)

	mustSubscribe(t, service, plainCaller, "k1")
	invoice := firstInvoice(t, service, plainCaller)

	if _, err := service.PayInvoice(context.Background(), plainCaller, "k2", invoice.InvoiceID); err != nil {
		t.Fatalf("first pay failed: %v", err)
	}
	_, err := service.PayInvoice(context.Background(), plainCaller, "k3", invoice.InvoiceID)
	if !errors.Is(err, domainerrors.ErrInvoiceNotFound) {
		t.Fatalf("expected not found on second pay, got %v", err)
	}

	payments, err := service.GetPaymentsFor(context.Background(), plainCaller, "")
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected exactly one payment, got %d", len(payments))
	}
}

func TestRenewalIssuesInvoiceWithoutTouchingSchedule(t *testing.T) {
	service, store := newService(t)

	view := mustSubscribe(t, service, plainCaller, "k1")
	scheduled := *view.Subscription.NextBillingDate

	renewal, err := service.RenewSubscription(context.Background(), plainCaller, "k2", view.Subscription.SubscriptionID)
	if err != nil {
		t.Fatalf("renew failed: %v", err)
	}
	if renewal.Status != entities.InvoiceStatusOpen || renewal.AmountCents != 1000 {
		t.Fatalf("unexpected renewal invoice: %+v", renewal)
	}

	if _, err := service.PayInvoice(context.Background(), plainCaller, "k3", renewal.InvoiceID); err != nil {
		t.Fatalf("pay renewal failed: %v", err)
	}

	reloaded, err := store.GetSubscription(context.Background(), view.Subscription.SubscriptionID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != entities.SubscriptionStatusActive {
		t.Fatalf("expected status untouched, got %s", reloaded.Status)
	}
	if reloaded.NextBillingDate == nil || !reloaded.NextBillingDate.Equal(scheduled) {
		t.Fatalf("expected schedule unchanged at %v, got %v", scheduled, reloaded.NextBillingDate)
	}
}

func TestCancelClearsNextBillingDate(t *testing.T) {
	service, _ := newService(t)

	view := mustSubscribe(t, service, plainCaller, "k1")
	canceled, err := service.UpdateSubscription(context.Background(), plainCaller, "k2",
		view.Subscription.SubscriptionID, ports.UpdateSubscriptionInput{
			Status: entities.SubscriptionStatusCanceled,
		})
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if canceled.Subscription.Status != entities.SubscriptionStatusCanceled {
		t.Fatalf("expected CANCELED, got %s", canceled.Subscription.Status)
	}
	if canceled.Subscription.NextBillingDate != nil {
		t.Fatalf("expected cleared next billing date, got %v", canceled.Subscription.NextBillingDate)
	}

	_, err = service.UpdateSubscription(context.Background(), plainCaller, "k3",
		view.Subscription.SubscriptionID, ports.UpdateSubscriptionInput{
			Status: entities.SubscriptionStatusActive,
		})
	if !errors.Is(err, domainerrors.ErrInvalidStatus) {
		t.Fatalf("expected re-activation to be rejected, got %v", err)
	}
}

func TestUpdateSubscriptionRequiresActivePlan(t *testing.T) {
	service, _ := newService(t)

	view := mustSubscribe(t, service, plainCaller, "k1")
	_, err := service.UpdateSubscription(context.Background(), plainCaller, "k2",
		view.Subscription.SubscriptionID, ports.UpdateSubscriptionInput{
			NewPlanID: "plan_legacy_monthly",
			Status:    entities.SubscriptionStatusActive,
		})
	if !errors.Is(err, domainerrors.ErrPlanInactive) {
		t.Fatalf("expected inactive plan rejection, got %v", err)
	}

	updated, err := service.UpdateSubscription(context.Background(), plainCaller, "k3",
		view.Subscription.SubscriptionID, ports.UpdateSubscriptionInput{
			NewPlanID: "plan_starter_yearly",
			Status:    entities.SubscriptionStatusActive,
		})
	if err != nil {
		t.Fatalf("plan change failed: %v", err)
	}
	if updated.Subscription.PlanID != "plan_starter_yearly" {
		t.Fatalf("expected plan reassignment, got %s", updated.Subscription.PlanID)
	}

	// Plan change alone never issues an invoice.
	invoices, err := service.GetInvoicesFor(context.Background(), plainCaller, "")
	if err != nil {
		t.Fatalf("list invoices failed: %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("expected only the first invoice, got %d", len(invoices))
	}
}

func TestOwnershipChainDeniesStrangers(t *testing.T) {
	service, _ := newService(t)

	view := mustSubscribe(t, service, plainCaller, "k1")
	invoice := firstInvoice(t, service, plainCaller)

	if _, err := service.GetInvoiceByID(context.Background(), otherCaller, invoice.InvoiceID); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied on invoice read, got %v", err)
	}
	if _, err := service.PayInvoice(context.Background(), otherCaller, "k2", invoice.InvoiceID); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied on pay, got %v", err)
	}
	if _, err := service.RenewSubscription(context.Background(), otherCaller, "k3", view.Subscription.SubscriptionID); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied on renew, got %v", err)
	}

	// Admins pass the same chain.
	if _, err := service.GetInvoiceByID(context.Background(), adminCaller, invoice.InvoiceID); err != nil {
		t.Fatalf("expected admin read to pass, got %v", err)
	}
}

func TestGetPaymentByIDFollowsChain(t *testing.T) {
	service, _ := newService(t)

	mustSubscribe(t, service, plainCaller, "k1")
	invoice := firstInvoice(t, service, plainCaller)
	payment, err := service.PayInvoice(context.Background(), plainCaller, "k2", invoice.InvoiceID)
	if err != nil {
		t.Fatalf("pay failed: %v", err)
	}

	loaded, err := service.GetPaymentByID(context.Background(), plainCaller, payment.PaymentID)
	if err != nil {
		t.Fatalf("owner payment read failed: %v", err)
	}
	if loaded.Reference == "" || loaded.Reference[:4] != "PAY-" {
		t.Fatalf("unexpected payment reference %q", loaded.Reference)
	}

	if _, err := service.GetPaymentByID(context.Background(), otherCaller, payment.PaymentID); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestCreateCustomerConflicts(t *testing.T) {
	service, _ := newService(t)

	input := ports.CreateCustomerInput{OwnerID: "owner_9", Name: "Nine", Email: "nine@example.com"}
	if _, err := service.CreateCustomer(context.Background(), adminCaller, "k1", input); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := service.CreateCustomer(context.Background(), adminCaller, "k2", input)
	if !errors.Is(err, domainerrors.ErrCustomerConflict) {
		t.Fatalf("expected conflict on duplicate owner, got %v", err)
	}

	if _, err := service.CreateCustomer(context.Background(), plainCaller, "k3", input); !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for non-admin, got %v", err)
	}
}

func TestUnauthenticatedCallersRejected(t *testing.T) {
	service, _ := newService(t)

	var anon accesspolicy.Identity
	if _, err := service.GetSubscriptionsFor(context.Background(), anon, ""); !errors.Is(err, accesspolicy.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if _, err := service.CreateSubscription(context.Background(), anon, "k1", ports.CreateSubscriptionInput{PlanID: "plan_starter_monthly"}); !errors.Is(err, accesspolicy.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }
