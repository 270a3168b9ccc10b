package entities

import "strings"

// BillingCycle is the recurrence unit of a plan. The set is closed: any value
// outside it is a programming error surfaced by the billing calendar, never a
// runtime default.
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

// Plan is a read-only projection of the catalog's plans table
// (no cross-service writes). Price is in cents.
type Plan struct {
	PlanID       string       `json:"plan_id"`
	Name         string       `json:"name"`
	PriceCents   int64        `json:"price_cents"`
	BillingCycle BillingCycle `json:"billing_cycle"`
	Active       bool         `json:"active"`
}
