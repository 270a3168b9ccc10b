package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/catalog/plan-service/domain/entities"
	domainerrors "billcore/contexts/catalog/plan-service/domain/errors"
	"billcore/contexts/catalog/plan-service/ports"
)

// Service owns the plan catalog. Mutations are admin-only; reads require an
// authenticated caller.
type Service struct {
	Repo        ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) CreatePlan(ctx context.Context, identity accesspolicy.Identity, input ports.PlanInput) (entities.Plan, error) {
	if err := accesspolicy.RequireAdmin(identity); err != nil {
		return entities.Plan{}, err
	}
	if err := validatePlanInput(input); err != nil {
		return entities.Plan{}, err
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Plan{}, err
	}
	now := s.now()
	plan := entities.Plan{
		PlanID:       "plan_" + id,
		Name:         strings.TrimSpace(input.Name),
		PriceCents:   input.PriceCents,
		BillingCycle: input.BillingCycle,
		Active:       input.Active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreatePlan(ctx, plan); err != nil {
		return entities.Plan{}, err
	}

	resolveLogger(s.Logger).Info("plan created",
		"event", "plan_created",
		"module", "catalog/plan-service",
		"layer", "application",
		"plan_id", plan.PlanID,
		"billing_cycle", string(plan.BillingCycle),
	)
	return plan, nil
}

func (s Service) GetPlan(ctx context.Context, identity accesspolicy.Identity, planID string) (entities.Plan, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return entities.Plan{}, err
	}
	if strings.TrimSpace(planID) == "" {
		return entities.Plan{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetPlan(ctx, strings.TrimSpace(planID))
}

func (s Service) ListPlans(ctx context.Context, identity accesspolicy.Identity) ([]entities.Plan, error) {
	if err := accesspolicy.Require(identity); err != nil {
		return nil, err
	}
	return s.Repo.ListPlans(ctx)
}

// UpdatePlan replaces the editable fields of an existing plan. Deactivation
// here never touches subscriptions already on the plan.
func (s Service) UpdatePlan(ctx context.Context, identity accesspolicy.Identity, planID string, input ports.PlanInput) (entities.Plan, error) {
	if err := accesspolicy.RequireAdmin(identity); err != nil {
		return entities.Plan{}, err
	}
	if strings.TrimSpace(planID) == "" {
		return entities.Plan{}, domainerrors.ErrInvalidRequest
	}
	if err := validatePlanInput(input); err != nil {
		return entities.Plan{}, err
	}

	plan, err := s.Repo.GetPlan(ctx, strings.TrimSpace(planID))
	if err != nil {
		return entities.Plan{}, err
	}
	plan.Name = strings.TrimSpace(input.Name)
	plan.PriceCents = input.PriceCents
	plan.BillingCycle = input.BillingCycle
	plan.Active = input.Active
	plan.UpdatedAt = s.now()

	if err := s.Repo.UpdatePlan(ctx, plan); err != nil {
		return entities.Plan{}, err
	}
	return plan, nil
}

func (s Service) DeletePlan(ctx context.Context, identity accesspolicy.Identity, planID string) error {
	if err := accesspolicy.RequireAdmin(identity); err != nil {
		return err
	}
	if strings.TrimSpace(planID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	if err := s.Repo.DeletePlan(ctx, strings.TrimSpace(planID)); err != nil {
		return err
	}

	resolveLogger(s.Logger).Info("plan deleted",
		"event", "plan_deleted",
		"module", "catalog/plan-service",
		"layer", "application",
		"plan_id", planID,
	)
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func validatePlanInput(input ports.PlanInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrInvalidRequest
	}
	if input.PriceCents < 0 {
		return domainerrors.ErrInvalidRequest
	}
	if _, ok := entities.ParseBillingCycle(string(input.BillingCycle)); !ok {
		return domainerrors.ErrInvalidBillingCycle
	}
	return nil
}
