package application

import (
	"context"
	"encoding/json"
	"strings"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
	"billcore/contexts/billing/billing-service/ports"
)

// CreateCustomer is the admin path for provisioning a billing profile bound
// to an arbitrary owner identity. Duplicate owners or emails conflict.
func (s Service) CreateCustomer(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	input ports.CreateCustomerInput,
) (entities.Customer, error) {
	var out entities.Customer
	if err := accesspolicy.RequireAdmin(identity); err != nil {
		return out, err
	}
	if strings.TrimSpace(input.OwnerID) == "" ||
		strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" {
		return out, domainerrors.ErrInvalidRequest
	}
	if err := s.requireIdempotency(idempotencyKey); err != nil {
		return out, err
	}

	requestHash := hashStrings("billing_create_customer", identity.ID, input.OwnerID, input.Name, input.Email)
	err := s.runIdempotent(
		ctx,
		strings.TrimSpace(idempotencyKey),
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &out) },
		func() ([]byte, error) {
			id, err := s.newID(ctx, "cus")
			if err != nil {
				return nil, err
			}
			customer := entities.Customer{
				CustomerID: id,
				OwnerID:    strings.TrimSpace(input.OwnerID),
				Name:       strings.TrimSpace(input.Name),
				Email:      strings.TrimSpace(input.Email),
				CreatedAt:  s.now(),
			}
			if err := s.Repo.CreateCustomer(ctx, customer); err != nil {
				return nil, err
			}
			return json.Marshal(customer)
		},
	)
	return out, err
}

func (s Service) GetCustomerByID(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) (entities.Customer, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return entities.Customer{}, err
	}
	if strings.TrimSpace(customerID) == "" {
		return entities.Customer{}, domainerrors.ErrInvalidRequest
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

func (s Service) GetMyCustomer(ctx context.Context, identity accesspolicy.Identity) (entities.Customer, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return entities.Customer{}, err
	}
	return s.Repo.FindCustomerByOwner(ctx, identity.ID)
}

func (s Service) ListCustomers(ctx context.Context, identity accesspolicy.Identity) ([]entities.Customer, error) {
	if err := accesspolicy.RequireAdmin(identity); err != nil {
		return nil, err
	}
	return s.Repo.ListCustomers(ctx)
}

// resolveTargetCustomer maps an optional explicit customer id to the
// subscription target. An explicit id is owner/admin checked; an omitted id
// resolves the caller's own customer, auto-provisioning one from the caller's
// identity when none exists. Provisioning is idempotent under concurrency:
// the owner uniqueness constraint is the source of truth and races resolve by
// re-reading.
func (s Service) resolveTargetCustomer(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) (entities.Customer, error) {
	if strings.TrimSpace(customerID) != "" {
		customer, err := s.Repo.GetCustomer(ctx, strings.TrimSpace(customerID))
		if err != nil {
			return entities.Customer{}, err
		}
		if err := accesspolicy.RequireAccess(identity, customer.OwnerID); err != nil {
			return entities.Customer{}, err
		}
		return customer, nil
	}

	id, err := s.newID(ctx, "cus")
	if err != nil {
		return entities.Customer{}, err
	}
	candidate := entities.Customer{
		CustomerID: id,
		OwnerID:    identity.ID,
		Name:       strings.TrimSpace(identity.DisplayName),
		Email:      strings.TrimSpace(identity.Email),
		CreatedAt:  s.now(),
	}
	customer, err := s.Repo.GetOrCreateCustomerByOwner(ctx, candidate)
	if err != nil {
		return entities.Customer{}, err
	}
	if customer.CustomerID == candidate.CustomerID {
		resolveLogger(s.Logger).Info("customer auto-provisioned",
			"event", "billing_customer_auto_provisioned",
			"module", "billing/billing-service",
			"layer", "application",
			"customer_id", customer.CustomerID,
			"owner_id", customer.OwnerID,
		)
	}
	return customer, nil
}
