package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"billcore/contexts/catalog/plan-service/domain/entities"
	domainerrors "billcore/contexts/catalog/plan-service/domain/errors"
	"billcore/contexts/catalog/plan-service/ports"
)

// Store is the in-memory catalog used for development and tests.
type Store struct {
	mu        sync.RWMutex
	plansByID map[string]entities.Plan
	sequence  uint64
}

func NewStore() *Store {
	now := time.Now().UTC()
	store := &Store{
		plansByID: make(map[string]entities.Plan),
	}
	for _, plan := range []entities.Plan{
		{
			PlanID:       "plan_starter_monthly",
			Name:         "Starter Monthly",
			PriceCents:   1000,
			BillingCycle: entities.BillingCycleMonthly,
			Active:       true,
			CreatedAt:    now.Add(-90 * 24 * time.Hour),
			UpdatedAt:    now.Add(-90 * 24 * time.Hour),
		},
		{
			PlanID:       "plan_starter_yearly",
			Name:         "Starter Yearly",
			PriceCents:   10800,
			BillingCycle: entities.BillingCycleYearly,
			Active:       true,
			CreatedAt:    now.Add(-90 * 24 * time.Hour),
			UpdatedAt:    now.Add(-90 * 24 * time.Hour),
		},
		{
			PlanID:       "plan_legacy_monthly",
			Name:         "Legacy Monthly",
			PriceCents:   800,
			BillingCycle: entities.BillingCycleMonthly,
			Active:       false,
			CreatedAt:    now.Add(-400 * 24 * time.Hour),
			UpdatedAt:    now.Add(-30 * 24 * time.Hour),
		},
	} {
		store.plansByID[plan.PlanID] = plan
	}
	return store
}

func (s *Store) CreatePlan(_ context.Context, plan entities.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plansByID[plan.PlanID]; ok {
		return domainerrors.ErrInvalidRequest
	}
	s.plansByID[plan.PlanID] = plan
	return nil
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

func (s *Store) ListPlans(_ context.Context) ([]entities.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Plan, 0, len(s.plansByID))
	for _, plan := range s.plansByID {
		items = append(items, plan)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].PlanID < items[j].PlanID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdatePlan(_ context.Context, plan entities.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plansByID[plan.PlanID]; !ok {
		return domainerrors.ErrPlanNotFound
	}
	s.plansByID[plan.PlanID] = plan
	return nil
}

func (s *Store) DeletePlan(_ context.Context, planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.plansByID[planID]; !ok {
		return domainerrors.ErrPlanNotFound
	}
	delete(s.plansByID, planID)
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
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
