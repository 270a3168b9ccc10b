package entities

import (
	"strings"
	"time"
)

// BillingCycle is the recurrence unit of a plan. The set is closed; anything
// outside it is rejected at the boundary.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "MONTHLY"
	BillingCycleYearly  BillingCycle = "YEARLY"
)

// ParseBillingCycle normalizes raw input against the closed cycle set.
func ParseBillingCycle(raw string) (BillingCycle, bool) {
	switch BillingCycle(strings.ToUpper(strings.TrimSpace(raw))) {
	case BillingCycleMonthly:
		return BillingCycleMonthly, true
	case BillingCycleYearly:
		return BillingCycleYearly, true
	}
	return "", false
}

// Plan is a catalog entry customers can subscribe to. Price is stored in
// cents. Deactivating a plan blocks new enrollment only; existing
// subscriptions keep billing against it.
type Plan struct {
	PlanID       string       `json:"plan_id"`
	Name         string       `json:"name"`
	PriceCents   int64        `json:"price_cents"`
	BillingCycle BillingCycle `json:"billing_cycle"`
	Active       bool         `json:"active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
