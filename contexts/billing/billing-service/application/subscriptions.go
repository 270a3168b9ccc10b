package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
	"billcore/contexts/billing/billing-service/domain/services"
	"billcore/contexts/billing/billing-service/ports"
)

// CreateSubscription enrolls a customer on a plan. The subscription and its
// first invoice commit in one atomic unit: neither ever exists without the
// other.
func (s Service) CreateSubscription(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	input ports.CreateSubscriptionInput,
) (ports.SubscriptionView, error) {
	var out ports.SubscriptionView
	if err := accesspolicy.Require(identity); err != nil {
		return out, err
	}
	if strings.TrimSpace(input.PlanID) == "" {
		return out, domainerrors.ErrInvalidRequest
	}
	if err := s.requireIdempotency(idempotencyKey); err != nil {
		return out, err
	}

	requestHash := hashStrings("billing_create_subscription", identity.ID, input.PlanID, input.CustomerID)
	err := s.runIdempotent(
		ctx,
		strings.TrimSpace(idempotencyKey),
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &out) },
		func() ([]byte, error) {
			view, err := s.createSubscription(ctx, identity, input)
			if err != nil {
				return nil, err
			}
			return json.Marshal(view)
		},
	)
	return out, err
}

func (s Service) createSubscription(
	ctx context.Context,
	identity accesspolicy.Identity,
	input ports.CreateSubscriptionInput,
) (ports.SubscriptionView, error) {
	customer, err := s.resolveTargetCustomer(ctx, identity, input.CustomerID)
	if err != nil {
		return ports.SubscriptionView{}, err
	}

	plan, err := s.Plans.GetPlan(ctx, strings.TrimSpace(input.PlanID))
	if err != nil {
		return ports.SubscriptionView{}, err
	}
	if !plan.Active {
		return ports.SubscriptionView{}, domainerrors.ErrPlanInactive
	}

	now := s.now()
	startDate := services.DateOf(now)
	nextBillingDate, err := services.NextBillingDate(startDate, plan.BillingCycle)
	if err != nil {
		return ports.SubscriptionView{}, err
	}

	subscriptionID, err := s.newID(ctx, "sub")
	if err != nil {
		return ports.SubscriptionView{}, err
	}
	subscription := entities.Subscription{
		SubscriptionID:  subscriptionID,
		CustomerID:      customer.CustomerID,
		PlanID:          plan.PlanID,
		Status:          entities.SubscriptionStatusActive,
		StartDate:       startDate,
		NextBillingDate: &nextBillingDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	invoice, err := s.newInvoice(ctx, subscription.SubscriptionID, plan.PriceCents, now)
	if err != nil {
		return ports.SubscriptionView{}, err
	}
	if err := s.Repo.CreateSubscriptionWithInvoice(ctx, subscription, invoice); err != nil {
		return ports.SubscriptionView{}, err
	}

	resolveLogger(s.Logger).Info("subscription created",
		"event", "billing_subscription_created",
		"module", "billing/billing-service",
		"layer", "application",
		"subscription_id", subscription.SubscriptionID,
		"customer_id", customer.CustomerID,
		"plan_id", plan.PlanID,
		"first_invoice_id", invoice.InvoiceID,
	)
	return ports.SubscriptionView{Subscription: subscription, Plan: plan, Customer: customer}, nil
}

// GetSubscriptionsFor lists a customer's subscriptions with plan and customer
// context resolved. An empty customerID targets the caller's own customer.
func (s Service) GetSubscriptionsFor(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) ([]ports.SubscriptionView, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return nil, err
	}

	customer, err := s.loadOwnedCustomer(ctx, identity, customerID)
	if err != nil {
		return nil, err
	}

	subscriptions, err := s.Repo.ListSubscriptionsByCustomer(ctx, customer.CustomerID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.SubscriptionView, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		plan, err := s.Plans.GetPlan(ctx, subscription.PlanID)
		if err != nil {
			return nil, err
		}
		views = append(views, ports.SubscriptionView{
			Subscription: subscription,
			Plan:         plan,
			Customer:     customer,
		})
	}
	return views, nil
}

// UpdateSubscription reassigns the plan and/or moves the status. Canceling
// clears the next billing date; that transition is irreversible here, so
// re-activating a canceled subscription is rejected. No invoice is issued by
// this operation alone.
func (s Service) UpdateSubscription(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	subscriptionID string,
	input ports.UpdateSubscriptionInput,
) (ports.SubscriptionView, error) {
	var out ports.SubscriptionView
	if err := accesspolicy.Require(identity); err != nil {
		return out, err
	}
	if strings.TrimSpace(subscriptionID) == "" {
		return out, domainerrors.ErrInvalidRequest
	}
	if _, ok := entities.ParseSubscriptionStatus(string(input.Status)); !ok {
		return out, domainerrors.ErrInvalidStatus
	}
	if err := s.requireIdempotency(idempotencyKey); err != nil {
		return out, err
	}

	requestHash := hashStrings("billing_update_subscription", identity.ID, subscriptionID, input.NewPlanID, string(input.Status))
	err := s.runIdempotent(
		ctx,
		strings.TrimSpace(idempotencyKey),
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &out) },
		func() ([]byte, error) {
			view, err := s.updateSubscription(ctx, identity, strings.TrimSpace(subscriptionID), input)
			if err != nil {
				return nil, err
			}
			return json.Marshal(view)
		},
	)
	return out, err
}

func (s Service) updateSubscription(
	ctx context.Context,
	identity accesspolicy.Identity,
	subscriptionID string,
	input ports.UpdateSubscriptionInput,
) (ports.SubscriptionView, error) {
	subscription, customer, err := s.loadOwnedSubscription(ctx, identity, subscriptionID)
	if err != nil {
		return ports.SubscriptionView{}, err
	}
	if subscription.Status == entities.SubscriptionStatusCanceled &&
		input.Status == entities.SubscriptionStatusActive {
		return ports.SubscriptionView{}, domainerrors.ErrInvalidStatus
	}

	if strings.TrimSpace(input.NewPlanID) != "" {
		newPlan, err := s.Plans.GetPlan(ctx, strings.TrimSpace(input.NewPlanID))
		if err != nil {
			return ports.SubscriptionView{}, err
		}
		if !newPlan.Active {
			return ports.SubscriptionView{}, domainerrors.ErrPlanInactive
		}
		subscription.PlanID = newPlan.PlanID
	}

	subscription.Status = input.Status
	if input.Status == entities.SubscriptionStatusCanceled {
		subscription.NextBillingDate = nil
	}
	subscription.UpdatedAt = s.now()

	if err := s.Repo.UpdateSubscription(ctx, subscription); err != nil {
		return ports.SubscriptionView{}, err
	}

	plan, err := s.Plans.GetPlan(ctx, subscription.PlanID)
	if err != nil {
		return ports.SubscriptionView{}, err
	}
	return ports.SubscriptionView{Subscription: subscription, Plan: plan, Customer: customer}, nil
}

// RenewSubscription issues a fresh OPEN invoice for the current plan price on
// demand. It never touches the status or the scheduled next billing date;
// paying the resulting invoice will not advance the schedule either.
func (s Service) RenewSubscription(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	subscriptionID string,
) (entities.Invoice, error) {
	var out entities.Invoice
	if err := accesspolicy.Require(identity); err != nil {
		return out, err
	}
	if strings.TrimSpace(subscriptionID) == "" {
		return out, domainerrors.ErrInvalidRequest
	}
	if err := s.requireIdempotency(idempotencyKey); err != nil {
		return out, err
	}

	requestHash := hashStrings("billing_renew_subscription", identity.ID, subscriptionID)
	err := s.runIdempotent(
		ctx,
		strings.TrimSpace(idempotencyKey),
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &out) },
		func() ([]byte, error) {
			subscription, _, err := s.loadOwnedSubscription(ctx, identity, strings.TrimSpace(subscriptionID))
			if err != nil {
				return nil, err
			}
			plan, err := s.Plans.GetPlan(ctx, subscription.PlanID)
			if err != nil {
				return nil, err
			}
			invoice, err := s.newInvoice(ctx, subscription.SubscriptionID, plan.PriceCents, s.now())
			if err != nil {
				return nil, err
			}
			if err := s.Repo.AddInvoice(ctx, invoice); err != nil {
				return nil, err
			}

			resolveLogger(s.Logger).Info("subscription renewed",
				"event", "billing_subscription_renewed",
				"module", "billing/billing-service",
				"layer", "application",
				"subscription_id", subscription.SubscriptionID,
				"invoice_id", invoice.InvoiceID,
			)
			return json.Marshal(invoice)
		},
	)
	return out, err
}

func (s Service) loadOwnedSubscription(
	ctx context.Context,
	identity accesspolicy.Identity,
	subscriptionID string,
) (entities.Subscription, entities.Customer, error) {
	subscription, err := s.Repo.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return entities.Subscription{}, entities.Customer{}, err
	}
	customer, err := s.Repo.GetCustomer(ctx, subscription.CustomerID)
	if err != nil {
		return entities.Subscription{}, entities.Customer{}, err
	}
	if err := accesspolicy.RequireAccess(identity, customer.OwnerID); err != nil {
		return entities.Subscription{}, entities.Customer{}, err
	}
	return subscription, customer, nil
}

func (s Service) newInvoice(
	ctx context.Context,
	subscriptionID string,
	amountCents int64,
	issuedAt time.Time,
) (entities.Invoice, error) {
	id, err := s.newID(ctx, "inv")
	if err != nil {
		return entities.Invoice{}, err
	}
	return entities.Invoice{
		InvoiceID:      id,
		SubscriptionID: subscriptionID,
		AmountCents:    amountCents,
		Status:         entities.InvoiceStatusOpen,
		IssuedAt:       issuedAt,
		DueDate:        services.DateOf(issuedAt).AddDate(0, 0, entities.InvoiceDueDays),
	}, nil
}
