package application

import (
	"context"
	"strings"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
)

// GetPaymentsFor lists a customer's payments. An empty customerID targets the
// caller's own customer.
func (s Service) GetPaymentsFor(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) ([]entities.Payment, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return nil, err
	}
	customer, err := s.loadOwnedCustomer(ctx, identity, customerID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListPaymentsByCustomer(ctx, customer.CustomerID)
}

// GetPaymentByID authorizes through the payment's invoice and subscription
// chain back to the owning customer.
func (s Service) GetPaymentByID(
	ctx context.Context,
	identity accesspolicy.Identity,
	paymentID string,
) (entities.Payment, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return entities.Payment{}, err
	}
	if strings.TrimSpace(paymentID) == "" {
		return entities.Payment{}, domainerrors.ErrInvalidRequest
	}
	payment, err := s.Repo.GetPayment(ctx, strings.TrimSpace(paymentID))
	if err != nil {
		return entities.Payment{}, err
	}
	invoice, err := s.Repo.GetInvoice(ctx, payment.InvoiceID)
	if err != nil {
		return entities.Payment{}, err
	}
	if _, _, err := s.loadOwnedSubscription(ctx, identity, invoice.SubscriptionID); err != nil {
		return entities.Payment{}, err
	}
	return payment, nil
}
