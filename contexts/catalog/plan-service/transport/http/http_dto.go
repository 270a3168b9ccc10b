package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PlanRequest struct {
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
	BillingCycle string `json:"billing_cycle"`
	Active       *bool  `json:"active,omitempty"`
}

type PlanData struct {
	PlanID       string `json:"plan_id"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
	BillingCycle string `json:"billing_cycle"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type PlanResponse struct {
	Status string   `json:"status"`
	Data   PlanData `json:"data"`
}

type ListPlansResponse struct {
	Status string     `json:"status"`
	Data   []PlanData `json:"data"`
}

type DeletePlanResponse struct {
	Status string `json:"status"`
}
