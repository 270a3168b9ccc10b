package entities

import (
	"strings"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
)

// ParseSubscriptionStatus normalizes raw input against the closed status set.
func ParseSubscriptionStatus(raw string) (SubscriptionStatus, bool) {
	switch SubscriptionStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case SubscriptionStatusActive:
		return SubscriptionStatusActive, true
	case SubscriptionStatusCanceled:
		return SubscriptionStatusCanceled, true
	}
	return "", false
}

// Subscription ties a customer to a plan on a billing schedule.
// Invariant: NextBillingDate is non-nil iff Status is ACTIVE.
type Subscription struct {
	SubscriptionID  string             `json:"subscription_id"`
	CustomerID      string             `json:"customer_id"`
	PlanID          string             `json:"plan_id"`
	Status          SubscriptionStatus `json:"status"`
	StartDate       time.Time          `json:"start_date"`
	NextBillingDate *time.Time         `json:"next_billing_date,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
