package entities

import "time"

// Customer is the billing profile for exactly one owning user identity.
// OwnerID and Email carry uniqueness constraints; the owner reference is the
// source of truth for idempotent auto-provisioning.
type Customer struct {
	CustomerID string    `json:"customer_id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}
