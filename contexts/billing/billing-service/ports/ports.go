package ports

import (
	"context"
	"time"

	"billcore/contexts/billing/billing-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Payload     []byte
	ExpiresAt   time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (IdempotencyRecord, bool, error)
	Put(ctx context.Context, record IdempotencyRecord) error
}

// PaymentProcessor is the seam where a real payment gateway would be
// substituted. The settlement engine treats the result as opaque (status plus
// reference) and never branches on the method.
type PaymentProcessor interface {
	Settle(ctx context.Context, invoice entities.Invoice, now time.Time) (entities.Payment, error)
}

// PlanCatalog is the read-only projection of the catalog context's plans.
type PlanCatalog interface {
	GetPlan(ctx context.Context, planID string) (entities.Plan, error)
}

type CreateSubscriptionInput struct {
	PlanID     string
	CustomerID string // optional; empty resolves (or provisions) the caller's own customer
}

type UpdateSubscriptionInput struct {
	NewPlanID string // optional plan reassignment
	Status    entities.SubscriptionStatus
}

type CreateCustomerInput struct {
	OwnerID string
	Name    string
	Email   string
}

// SubscriptionView is a subscription with its plan and customer context
// resolved for presentation.
type SubscriptionView struct {
	Subscription entities.Subscription `json:"subscription"`
	Plan         entities.Plan         `json:"plan"`
	Customer     entities.Customer     `json:"customer"`
}

type Repository interface {
	// CreateCustomer persists an admin-created customer; reusing an owner or
	// email fails with the customer conflict error.
	CreateCustomer(ctx context.Context, customer entities.Customer) error
	// GetOrCreateCustomerByOwner provisions candidate unless a customer for
	// the same owner already exists, in which case the existing row wins.
	// Races on the owner uniqueness constraint resolve by re-reading.
	GetOrCreateCustomerByOwner(ctx context.Context, candidate entities.Customer) (entities.Customer, error)
	FindCustomerByOwner(ctx context.Context, ownerID string) (entities.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (entities.Customer, error)
	ListCustomers(ctx context.Context) ([]entities.Customer, error)

	// CreateSubscriptionWithInvoice commits the subscription and its first
	// invoice as one atomic unit.
	CreateSubscriptionWithInvoice(ctx context.Context, subscription entities.Subscription, invoice entities.Invoice) error
	GetSubscription(ctx context.Context, subscriptionID string) (entities.Subscription, error)
	ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]entities.Subscription, error)
	UpdateSubscription(ctx context.Context, subscription entities.Subscription) error

	AddInvoice(ctx context.Context, invoice entities.Invoice) error
	GetInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error)
	// FindOpenInvoice is the filtered lookup enforcing single settlement:
	// an invoice that is absent or already PAID reports not-found.
	FindOpenInvoice(ctx context.Context, invoiceID string) (entities.Invoice, error)
	ListInvoicesByCustomer(ctx context.Context, customerID string) ([]entities.Invoice, error)
	// SettleOpenInvoice atomically re-checks OPEN status under lock, records
	// the payment, marks the invoice PAID on success, and advances the
	// subscription schedule when the invoice opened the current period.
	SettleOpenInvoice(ctx context.Context, invoiceID string, payment entities.Payment, cycle entities.BillingCycle, now time.Time) (entities.Payment, error)

	GetPayment(ctx context.Context, paymentID string) (entities.Payment, error)
	ListPaymentsByCustomer(ctx context.Context, customerID string) ([]entities.Payment, error)
}
