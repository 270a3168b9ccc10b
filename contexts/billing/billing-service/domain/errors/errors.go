package errors

import "errors"

var (
	ErrInvalidRequest         = errors.New("invalid request")
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	ErrIdempotencyConflict    = errors.New("idempotency key reused with different request")

	ErrCustomerNotFound     = errors.New("customer not found")
	ErrCustomerConflict     = errors.New("customer already exists for this owner or email")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrPlanInactive         = errors.New("cannot subscribe to an inactive plan")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrPaymentNotFound      = errors.New("payment not found")

	ErrInvalidBillingCycle = errors.New("unknown billing cycle")
	ErrInvalidStatus       = errors.New("subscription status transition is not allowed")
)
