package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/catalog/plan-service/application"
	"billcore/contexts/catalog/plan-service/domain/entities"
	domainerrors "billcore/contexts/catalog/plan-service/domain/errors"
	"billcore/contexts/catalog/plan-service/ports"
	httptransport "billcore/contexts/catalog/plan-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreatePlanHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	req httptransport.PlanRequest,
) (httptransport.PlanResponse, error) {
	input, err := toPlanInput(req)
	if err != nil {
		return httptransport.PlanResponse{}, err
	}
	plan, err := h.Service.CreatePlan(ctx, identity, input)
	if err != nil {
		return httptransport.PlanResponse{}, err
	}
	return httptransport.PlanResponse{Status: "success", Data: toPlanData(plan)}, nil
}

func (h Handler) GetPlanHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	planID string,
) (httptransport.PlanResponse, error) {
	plan, err := h.Service.GetPlan(ctx, identity, planID)
	if err != nil {
		return httptransport.PlanResponse{}, err
	}
	return httptransport.PlanResponse{Status: "success", Data: toPlanData(plan)}, nil
}

func (h Handler) ListPlansHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
) (httptransport.ListPlansResponse, error) {
	plans, err := h.Service.ListPlans(ctx, identity)
	if err != nil {
		return httptransport.ListPlansResponse{}, err
	}
	items := make([]httptransport.PlanData, 0, len(plans))
	for _, plan := range plans {
		items = append(items, toPlanData(plan))
	}
	return httptransport.ListPlansResponse{Status: "success", Data: items}, nil
}

func (h Handler) UpdatePlanHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	planID string,
	req httptransport.PlanRequest,
) (httptransport.PlanResponse, error) {
	input, err := toPlanInput(req)
	if err != nil {
		return httptransport.PlanResponse{}, err
	}
	plan, err := h.Service.UpdatePlan(ctx, identity, strings.TrimSpace(planID), input)
	if err != nil {
		return httptransport.PlanResponse{}, err
	}
	return httptransport.PlanResponse{Status: "success", Data: toPlanData(plan)}, nil
}

func (h Handler) DeletePlanHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	planID string,
) (httptransport.DeletePlanResponse, error) {
	if err := h.Service.DeletePlan(ctx, identity, strings.TrimSpace(planID)); err != nil {
		return httptransport.DeletePlanResponse{}, err
	}
	return httptransport.DeletePlanResponse{Status: "success"}, nil
}

func toPlanInput(req httptransport.PlanRequest) (ports.PlanInput, error) {
	cycle, ok := entities.ParseBillingCycle(req.BillingCycle)
	if !ok {
		return ports.PlanInput{}, domainerrors.ErrInvalidBillingCycle
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return ports.PlanInput{
		Name:         strings.TrimSpace(req.Name),
		PriceCents:   req.PriceCents,
		BillingCycle: cycle,
		Active:       active,
	}, nil
}

func toPlanData(plan entities.Plan) httptransport.PlanData {
	return httptransport.PlanData{
		PlanID:       plan.PlanID,
		Name:         plan.Name,
		PriceCents:   plan.PriceCents,
		BillingCycle: string(plan.BillingCycle),
		Active:       plan.Active,
		CreatedAt:    plan.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    plan.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
