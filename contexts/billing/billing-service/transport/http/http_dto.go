package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCustomerRequest struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

type CustomerData struct {
	CustomerID string `json:"customer_id"`
	OwnerID    string `json:"owner_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	CreatedAt  string `json:"created_at"`
}

type CustomerResponse struct {
	Status string       `json:"status"`
	Data   CustomerData `json:"data"`
}

type ListCustomersResponse struct {
	Status string         `json:"status"`
	Data   []CustomerData `json:"data"`
}

type CreateSubscriptionRequest struct {
	PlanID     string `json:"plan_id"`
	CustomerID string `json:"customer_id,omitempty"`
}

type UpdateSubscriptionRequest struct {
	NewPlanID string `json:"new_plan_id,omitempty"`
	Status    string `json:"status"`
}

type PlanData struct {
	PlanID       string `json:"plan_id"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
	BillingCycle string `json:"billing_cycle"`
	Active       bool   `json:"active"`
}

type SubscriptionData struct {
	SubscriptionID  string       `json:"subscription_id"`
	Status          string       `json:"status"`
	StartDate       string       `json:"start_date"`
	NextBillingDate string       `json:"next_billing_date,omitempty"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
	Plan            PlanData     `json:"plan"`
	Customer        CustomerData `json:"customer"`
}

type SubscriptionResponse struct {
	Status string           `json:"status"`
	Data   SubscriptionData `json:"data"`
}

type ListSubscriptionsResponse struct {
	Status string             `json:"status"`
	Data   []SubscriptionData `json:"data"`
}

type InvoiceData struct {
	InvoiceID      string `json:"invoice_id"`
	SubscriptionID string `json:"subscription_id"`
	AmountCents    int64  `json:"amount_cents"`
	Status         string `json:"status"`
	IssuedAt       string `json:"issued_at"`
	DueDate        string `json:"due_date"`
}

type InvoiceResponse struct {
	Status string      `json:"status"`
	Data   InvoiceData `json:"data"`
}

type ListInvoicesResponse struct {
	Status string        `json:"status"`
	Data   []InvoiceData `json:"data"`
}

type PaymentData struct {
	PaymentID   string `json:"payment_id"`
	InvoiceID   string `json:"invoice_id"`
	AmountCents int64  `json:"amount_cents"`
	Method      string `json:"method"`
	Status      string `json:"status"`
	PaidAt      string `json:"paid_at"`
	Reference   string `json:"reference"`
}

type PaymentResponse struct {
	Status string      `json:"status"`
	Data   PaymentData `json:"data"`
}

type ListPaymentsResponse struct {
	Status string        `json:"status"`
	Data   []PaymentData `json:"data"`
}
