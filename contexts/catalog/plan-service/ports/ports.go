package ports

import (
	"context"
	"time"

	"billcore/contexts/catalog/plan-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PlanInput carries the admin-editable plan fields for create and update.
type PlanInput struct {
	Name         string
	PriceCents   int64
	BillingCycle entities.BillingCycle
	Active       bool
}

type Repository interface {
	CreatePlan(ctx context.Context, plan entities.Plan) error
	GetPlan(ctx context.Context, planID string) (entities.Plan, error)
	ListPlans(ctx context.Context) ([]entities.Plan, error)
	UpdatePlan(ctx context.Context, plan entities.Plan) error
	DeletePlan(ctx context.Context, planID string) error
}
