package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
	"billcore/contexts/billing/billing-service/domain/services"
	"billcore/contexts/billing/billing-service/ports"
)

// Store is the in-memory billing backend used for development and tests. It
// implements the repository, idempotency store, plan projection, clock, and
// id generator ports behind one mutex so multi-entity operations stay atomic.
type Store struct {
	mu               sync.RWMutex
	customersByID    map[string]entities.Customer
	customersByOwner map[string]string
	subscriptions    map[string]entities.Subscription
	invoices         map[string]entities.Invoice
	payments         map[string]entities.Payment
	plansByID        map[string]entities.Plan
	idempotency      map[string]ports.IdempotencyRecord
	sequence         uint64
}

func NewStore() *Store {
	store := &Store{
		customersByID:    make(map[string]entities.Customer),
		customersByOwner: make(map[string]string),
		subscriptions:    make(map[string]entities.Subscription),
		invoices:         make(map[string]entities.Invoice),
		payments:         make(map[string]entities.Payment),
		plansByID:        make(map[string]entities.Plan),
		idempotency:      make(map[string]ports.IdempotencyRecord),
	}
	for _, plan := range []entities.Plan{
		{PlanID: "plan_starter_monthly", Name: "Starter Monthly", PriceCents: 1000, BillingCycle: entities.BillingCycleMonthly, Active: true},
		{PlanID: "plan_starter_yearly", Name: "Starter Yearly", PriceCents: 10800, BillingCycle: entities.BillingCycleYearly, Active: true},
		{PlanID: "plan_legacy_monthly", Name: "Legacy Monthly", PriceCents: 800, BillingCycle: entities.BillingCycleMonthly, Active: false},
	} {
		store.plansByID[plan.PlanID] = plan
	}
	return store
}

// PutPlan seeds or replaces a plan projection row. Tests and the in-memory
// wiring use it to mirror catalog changes into the billing view.
func (s *Store) PutPlan(plan entities.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plansByID[plan.PlanID] = plan
}

func (s *Store) GetPlan(_ context.Context, planID string) (entities.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plansByID[planID]
	if !ok {
		return entities.Plan{}, domainerrors.ErrPlanNotFound
	}
	return plan, nil
}

func (s *Store) CreateCustomer(_ context.Context, customer entities.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customersByOwner[customer.OwnerID]; ok {
		return domainerrors.ErrCustomerConflict
	}
	for _, existing := range s.customersByID {
		if existing.Email == customer.Email {
			return domainerrors.ErrCustomerConflict
		}
	}
	s.customersByID[customer.CustomerID] = customer
	s.customersByOwner[customer.OwnerID] = customer.CustomerID
	return nil
}

func (s *Store) GetOrCreateCustomerByOwner(_ context.Context, candidate entities.Customer) (entities.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.customersByOwner[candidate.OwnerID]; ok {
		return s.customersByID[id], nil
	}
	s.customersByID[candidate.CustomerID] = candidate
	s.customersByOwner[candidate.OwnerID] = candidate.CustomerID
	return candidate, nil
}

func (s *Store) FindCustomerByOwner(_ context.Context, ownerID string) (entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.customersByOwner[ownerID]
	if !ok {
		return entities.Customer{}, domainerrors.ErrCustomerNotFound
	}
	return s.customersByID[id], nil
}

func (s *Store) GetCustomer(_ context.Context, customerID string) (entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customersByID[customerID]
	if !ok {
		return entities.Customer{}, domainerrors.ErrCustomerNotFound
	}
	return customer, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]entities.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Customer, 0, len(s.customersByID))
	for _, customer := range s.customersByID {
		items = append(items, customer)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CustomerID < items[j].CustomerID })
	return items, nil
}

func (s *Store) CreateSubscriptionWithInvoice(_ context.Context, subscription entities.Subscription, invoice entities.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customersByID[subscription.CustomerID]; !ok {
		return domainerrors.ErrCustomerNotFound
	}
	s.subscriptions[subscription.SubscriptionID] = subscription
	s.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (s *Store) GetSubscription(_ context.Context, subscriptionID string) (entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subscription, ok := s.subscriptions[subscriptionID]
	if !ok {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}
	return subscription, nil
}

func (s *Store) ListSubscriptionsByCustomer(_ context.Context, customerID string) ([]entities.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Subscription, 0)
	for _, subscription := range s.subscriptions {
		if subscription.CustomerID == customerID {
			items = append(items, subscription)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].SubscriptionID < items[j].SubscriptionID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateSubscription(_ context.Context, subscription entities.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscriptions[subscription.SubscriptionID]; !ok {
		return domainerrors.ErrSubscriptionNotFound
	}
	s.subscriptions[subscription.SubscriptionID] = subscription
	return nil
}

func (s *Store) AddInvoice(_ context.Context, invoice entities.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscriptions[invoice.SubscriptionID]; !ok {
		return domainerrors.ErrSubscriptionNotFound
	}
	s.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (s *Store) GetInvoice(_ context.Context, invoiceID string) (entities.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoice, ok := s.invoices[invoiceID]
	if !ok {
		return entities.Invoice{}, domainerrors.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *Store) FindOpenInvoice(_ context.Context, invoiceID string) (entities.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invoice, ok := s.invoices[invoiceID]
	if !ok || invoice.Status != entities.InvoiceStatusOpen {
		return entities.Invoice{}, domainerrors.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *Store) ListInvoicesByCustomer(_ context.Context, customerID string) ([]entities.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Invoice, 0)
	for _, invoice := range s.invoices {
		subscription, ok := s.subscriptions[invoice.SubscriptionID]
		if ok && subscription.CustomerID == customerID {
			items = append(items, invoice)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].IssuedAt.Equal(items[j].IssuedAt) {
			return items[i].InvoiceID < items[j].InvoiceID
		}
		return items[i].IssuedAt.After(items[j].IssuedAt)
	})
	return items, nil
}

// SettleOpenInvoice re-checks OPEN status under the write lock so a racing
// second settlement of the same invoice reports not-found instead of double
// charging, then records the payment, flips the invoice, and conditionally
// advances the subscription schedule, all in one critical section.
func (s *Store) SettleOpenInvoice(
	_ context.Context,
	invoiceID string,
	payment entities.Payment,
	cycle entities.BillingCycle,
	now time.Time,
) (entities.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, ok := s.invoices[invoiceID]
	if !ok || invoice.Status != entities.InvoiceStatusOpen {
		return entities.Payment{}, domainerrors.ErrInvoiceNotFound
	}
	subscription, ok := s.subscriptions[invoice.SubscriptionID]
	if !ok {
		return entities.Payment{}, domainerrors.ErrSubscriptionNotFound
	}

	s.payments[payment.PaymentID] = payment
	if payment.Status != entities.PaymentStatusSuccess {
		return payment, nil
	}

	invoice.Status = entities.InvoiceStatusPaid
	s.invoices[invoice.InvoiceID] = invoice

	next, advance, err := services.AdvanceOnSettlement(subscription, invoice, cycle)
	if err != nil {
		return entities.Payment{}, err
	}
	if advance {
		subscription.NextBillingDate = &next
		subscription.UpdatedAt = now
		s.subscriptions[subscription.SubscriptionID] = subscription
	}
	return payment, nil
}

func (s *Store) GetPayment(_ context.Context, paymentID string) (entities.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payment, ok := s.payments[paymentID]
	if !ok {
		return entities.Payment{}, domainerrors.ErrPaymentNotFound
	}
	return payment, nil
}

func (s *Store) ListPaymentsByCustomer(_ context.Context, customerID string) ([]entities.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Payment, 0)
	for _, payment := range s.payments {
		invoice, ok := s.invoices[payment.InvoiceID]
		if !ok {
			continue
		}
		subscription, ok := s.subscriptions[invoice.SubscriptionID]
		if ok && subscription.CustomerID == customerID {
			items = append(items, payment)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].PaidAt.Equal(items[j].PaidAt) {
			return items[i].PaymentID < items[j].PaymentID
		}
		return items[i].PaidAt.After(items[j].PaidAt)
	})
	return items, nil
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.idempotency[key]
	if !ok || now.After(record.ExpiresAt) {
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.idempotency[record.Key] = record
	return nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	n := atomic.AddUint64(&s.sequence, 1)
	return fmt.Sprintf("%d", n), nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

var _ ports.Repository = (*Store)(nil)
var _ ports.IdempotencyStore = (*Store)(nil)
var _ ports.PlanCatalog = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
