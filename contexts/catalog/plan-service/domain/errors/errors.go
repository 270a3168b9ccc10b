package errors

import "errors"

var (
	ErrInvalidRequest      = errors.New("invalid plan request")
	ErrInvalidBillingCycle = errors.New("unknown billing cycle")
	ErrPlanNotFound        = errors.New("plan not found")
)
