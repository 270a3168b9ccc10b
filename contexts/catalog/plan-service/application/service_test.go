package application

import (
	"context"
	"errors"
	"testing"
	"time"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/catalog/plan-service/adapters/memory"
	"billcore/contexts/catalog/plan-service/domain/entities"
	domainerrors "billcore/contexts/catalog/plan-service/domain/errors"
	"billcore/contexts/catalog/plan-service/ports"
)

var (
	adminCaller = accesspolicy.Identity{ID: "admin_1", DisplayName: "Admin", Email: "admin@example.com", Admin: true}
	plainCaller = accesspolicy.Identity{ID: "user_1", DisplayName: "Ada", Email: "ada@example.com"}
)

func newService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return Service{
		Repo:        store,
		Clock:       fixedClock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)},
		IDGenerator: store,
	}, store
}

func TestCreatePlanRequiresAdmin(t *testing.T) {
	service, _ := newService(t)

	_, err := service.CreatePlan(context.Background(), plainCaller, validInput())
	if !errors.Is(err, accesspolicy.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for non-admin, got %v", err)
	}
	_, err = service.CreatePlan(context.Background(), accesspolicy.Identity{}, validInput())
	if !errors.Is(err, accesspolicy.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	service, _ := newService(t)

	input := validInput()
	input.Name = "  "
	if _, err := service.CreatePlan(context.Background(), adminCaller, input); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for blank name, got %v", err)
	}

	input = validInput()
	input.PriceCents = -1
	if _, err := service.CreatePlan(context.Background(), adminCaller, input); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for negative price, got %v", err)
	}

	input = validInput()
	input.BillingCycle = "WEEKLY"
	if _, err := service.CreatePlan(context.Background(), adminCaller, input); !errors.Is(err, domainerrors.ErrInvalidBillingCycle) {
		t.Fatalf("expected invalid billing cycle, got %v", err)
	}
}

func TestCreateAndGetPlan(t *testing.T) {
	service, _ := newService(t)

	created, err := service.CreatePlan(context.Background(), adminCaller, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.PlanID == "" {
		t.Fatal("expected generated plan id")
	}

	loaded, err := service.GetPlan(context.Background(), plainCaller, created.PlanID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Name != "Team Monthly" || loaded.PriceCents != 2500 {
		t.Fatalf("unexpected plan round trip: %+v", loaded)
	}
}

func TestUpdatePlanDeactivates(t *testing.T) {
	service, store := newService(t)

	input := validInput()
	input.Active = false
	updated, err := service.UpdatePlan(context.Background(), adminCaller, "plan_starter_monthly", input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Active {
		t.Fatal("expected plan to be deactivated")
	}

	reloaded, err := store.GetPlan(context.Background(), "plan_starter_monthly")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Active {
		t.Fatal("expected deactivation to persist")
	}
}

func TestDeletePlanMissing(t *testing.T) {
	service, _ := newService(t)

	err := service.DeletePlan(context.Background(), adminCaller, "plan_ghost")
	if !errors.Is(err, domainerrors.ErrPlanNotFound) {
		t.Fatalf("expected plan not found, got %v", err)
	}
}

func validInput() ports.PlanInput {
	return ports.PlanInput{
		Name:         "Team Monthly",
		PriceCents:   2500,
		BillingCycle: entities.BillingCycleMonthly,
		Active:       true,
	}
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }
