package application

import (
	"context"
	"encoding/json"
	"strings"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
)

// GetInvoicesFor lists a customer's invoices, newest issue first. An empty
// customerID targets the caller's own customer.
func (s Service) GetInvoicesFor(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) ([]entities.Invoice, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return nil, err
	}
	customer, err := s.loadOwnedCustomer(ctx, identity, customerID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListInvoicesByCustomer(ctx, customer.CustomerID)
}

// GetInvoiceByID authorizes through the invoice's subscription chain: only the
// owning customer's identity or an admin may read it.
func (s Service) GetInvoiceByID(
	ctx context.Context,
	identity accesspolicy.Identity,
	invoiceID string,
) (entities.Invoice, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return entities.Invoice{}, err
	}
	if strings.TrimSpace(invoiceID) == "" {
		return entities.Invoice{}, domainerrors.ErrInvalidRequest
	}
	invoice, err := s.Repo.GetInvoice(ctx, strings.TrimSpace(invoiceID))
	if err != nil {
		return entities.Invoice{}, err
	}
	if _, _, err := s.loadOwnedSubscription(ctx, identity, invoice.SubscriptionID); err != nil {
		return entities.Invoice{}, err
	}
	return invoice, nil
}

// PayInvoice settles one OPEN invoice exactly once. The lookup is filtered to
// OPEN invoices, so a second attempt on the same invoice reports not-found
// rather than double charging. Settlement and the conditional schedule
// advancement commit atomically.
func (s Service) PayInvoice(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	invoiceID string,
) (entities.Payment, error) {
	var out entities.Payment
	if err := accesspolicy.Require(identity); err != nil {
		return out, err
	}
	if strings.TrimSpace(invoiceID) == "" {
		return out, domainerrors.ErrInvalidRequest
	}
	if err := s.requireIdempotency(idempotencyKey); err != nil {
		return out, err
	}

	requestHash := hashStrings("billing_pay_invoice", identity.ID, invoiceID)
	err := s.runIdempotent(
		ctx,
		strings.TrimSpace(idempotencyKey),
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &out) },
		func() ([]byte, error) {
			payment, err := s.payInvoice(ctx, identity, strings.TrimSpace(invoiceID))
			if err != nil {
				return nil, err
			}
			return json.Marshal(payment)
		},
	)
	return out, err
}

func (s Service) payInvoice(
	ctx context.Context,
	identity accesspolicy.Identity,
	invoiceID string,
) (entities.Payment, error) {
	invoice, err := s.Repo.FindOpenInvoice(ctx, invoiceID)
	if err != nil {
		return entities.Payment{}, err
	}
	subscription, _, err := s.loadOwnedSubscription(ctx, identity, invoice.SubscriptionID)
	if err != nil {
		return entities.Payment{}, err
	}
	plan, err := s.Plans.GetPlan(ctx, subscription.PlanID)
	if err != nil {
		return entities.Payment{}, err
	}

	now := s.now()
	payment, err := s.Processor.Settle(ctx, invoice, now)
	if err != nil {
		return entities.Payment{}, err
	}

	settled, err := s.Repo.SettleOpenInvoice(ctx, invoice.InvoiceID, payment, plan.BillingCycle, now)
	if err != nil {
		return entities.Payment{}, err
	}

	resolveLogger(s.Logger).Info("invoice settled",
		"event", "billing_invoice_settled",
		"module", "billing/billing-service",
		"layer", "application",
		"invoice_id", invoice.InvoiceID,
		"subscription_id", subscription.SubscriptionID,
		"payment_id", settled.PaymentID,
		"amount_cents", settled.AmountCents,
	)
	return settled, nil
}

func (s Service) loadOwnedCustomer(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) (entities.Customer, error) {
	if strings.TrimSpace(customerID) == "" {
		return s.Repo.FindCustomerByOwner(ctx, identity.ID)
	}
	customer, err := s.Repo.GetCustomer(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return entities.Customer{}, err
	}
	if err := accesspolicy.RequireAccess(identity, customer.OwnerID); err != nil {
		return entities.Customer{}, err
	}
	return customer, nil
}
