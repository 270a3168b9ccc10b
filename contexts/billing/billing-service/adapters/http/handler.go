package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	accesspolicy "billcore/contexts/identity-access/access-policy"

	"billcore/contexts/billing/billing-service/application"
	"billcore/contexts/billing/billing-service/domain/entities"
	domainerrors "billcore/contexts/billing/billing-service/domain/errors"
	"billcore/contexts/billing/billing-service/ports"
	httptransport "billcore/contexts/billing/billing-service/transport/http"
)

// dateLayout renders the calendar-date fields (start, due, next billing).
const dateLayout = "2006-01-02"

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateCustomerHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	req httptransport.CreateCustomerRequest,
) (httptransport.CustomerResponse, error) {
	customer, err := h.Service.CreateCustomer(ctx, identity, idempotencyKey, ports.CreateCustomerInput{
		OwnerID: strings.TrimSpace(req.OwnerID),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
	})
	if err != nil {
		return httptransport.CustomerResponse{}, err
	}
	return httptransport.CustomerResponse{Status: "success", Data: toCustomerData(customer)}, nil
}

func (h Handler) GetCustomerHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) (httptransport.CustomerResponse, error) {
	customer, err := h.Service.GetCustomerByID(ctx, identity, customerID)
	if err != nil {
		return httptransport.CustomerResponse{}, err
	}
	return httptransport.CustomerResponse{Status: "success", Data: toCustomerData(customer)}, nil
}

func (h Handler) GetMyCustomerHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
) (httptransport.CustomerResponse, error) {
	customer, err := h.Service.GetMyCustomer(ctx, identity)
	if err != nil {
		return httptransport.CustomerResponse{}, err
	}
	return httptransport.CustomerResponse{Status: "success", Data: toCustomerData(customer)}, nil
}

func (h Handler) ListCustomersHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
) (httptransport.ListCustomersResponse, error) {
	customers, err := h.Service.ListCustomers(ctx, identity)
	if err != nil {
		return httptransport.ListCustomersResponse{}, err
	}
	items := make([]httptransport.CustomerData, 0, len(customers))
	for _, customer := range customers {
		items = append(items, toCustomerData(customer))
	}
	return httptransport.ListCustomersResponse{Status: "success", Data: items}, nil
}

func (h Handler) CreateSubscriptionHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	req httptransport.CreateSubscriptionRequest,
) (httptransport.SubscriptionResponse, error) {
	view, err := h.Service.CreateSubscription(ctx, identity, idempotencyKey, ports.CreateSubscriptionInput{
		PlanID:     strings.TrimSpace(req.PlanID),
		CustomerID: strings.TrimSpace(req.CustomerID),
	})
	if err != nil {
		return httptransport.SubscriptionResponse{}, err
	}
	return httptransport.SubscriptionResponse{Status: "success", Data: toSubscriptionData(view)}, nil
}

func (h Handler) ListSubscriptionsHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) (httptransport.ListSubscriptionsResponse, error) {
	views, err := h.Service.GetSubscriptionsFor(ctx, identity, customerID)
	if err != nil {
		return httptransport.ListSubscriptionsResponse{}, err
	}
	items := make([]httptransport.SubscriptionData, 0, len(views))
	for _, view := range views {
		items = append(items, toSubscriptionData(view))
	}
	return httptransport.ListSubscriptionsResponse{Status: "success", Data: items}, nil
}

func (h Handler) UpdateSubscriptionHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	subscriptionID string,
	req httptransport.UpdateSubscriptionRequest,
) (httptransport.SubscriptionResponse, error) {
	status, ok := entities.ParseSubscriptionStatus(req.Status)
	if !ok {
		return httptransport.SubscriptionResponse{}, domainerrors.ErrInvalidStatus
	}
	view, err := h.Service.UpdateSubscription(ctx, identity, idempotencyKey, subscriptionID, ports.UpdateSubscriptionInput{
		NewPlanID: strings.TrimSpace(req.NewPlanID),
		Status:    status,
	})
	if err != nil {
		return httptransport.SubscriptionResponse{}, err
	}
	return httptransport.SubscriptionResponse{Status: "success", Data: toSubscriptionData(view)}, nil
}

func (h Handler) RenewSubscriptionHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	subscriptionID string,
) (httptransport.InvoiceResponse, error) {
	invoice, err := h.Service.RenewSubscription(ctx, identity, idempotencyKey, subscriptionID)
	if err != nil {
		return httptransport.InvoiceResponse{}, err
	}
	return httptransport.InvoiceResponse{Status: "success", Data: toInvoiceData(invoice)}, nil
}

func (h Handler) ListInvoicesHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) (httptransport.ListInvoicesResponse, error) {
	invoices, err := h.Service.GetInvoicesFor(ctx, identity, customerID)
	if err != nil {
		return httptransport.ListInvoicesResponse{}, err
	}
	items := make([]httptransport.InvoiceData, 0, len(invoices))
	for _, invoice := range invoices {
		items = append(items, toInvoiceData(invoice))
	}
	return httptransport.ListInvoicesResponse{Status: "success", Data: items}, nil
}

func (h Handler) GetInvoiceHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	invoiceID string,
) (httptransport.InvoiceResponse, error) {
	invoice, err := h.Service.GetInvoiceByID(ctx, identity, invoiceID)
	if err != nil {
		return httptransport.InvoiceResponse{}, err
	}
	return httptransport.InvoiceResponse{Status: "success", Data: toInvoiceData(invoice)}, nil
}

func (h Handler) PayInvoiceHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	idempotencyKey string,
	invoiceID string,
) (httptransport.PaymentResponse, error) {
	payment, err := h.Service.PayInvoice(ctx, identity, idempotencyKey, invoiceID)
	if err != nil {
		return httptransport.PaymentResponse{}, err
	}
	return httptransport.PaymentResponse{Status: "success", Data: toPaymentData(payment)}, nil
}

func (h Handler) ListPaymentsHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	customerID string,
) (httptransport.ListPaymentsResponse, error) {
	payments, err := h.Service.GetPaymentsFor(ctx, identity, customerID)
	if err != nil {
		return httptransport.ListPaymentsResponse{}, err
	}
	items := make([]httptransport.PaymentData, 0, len(payments))
	for _, payment := range payments {
		items = append(items, toPaymentData(payment))
	}
	return httptransport.ListPaymentsResponse{Status: "success", Data: items}, nil
}

func (h Handler) GetPaymentHandler(
	ctx context.Context,
	identity accesspolicy.Identity,
	paymentID string,
) (httptransport.PaymentResponse, error) {
	payment, err := h.Service.GetPaymentByID(ctx, identity, paymentID)
	if err != nil {
		return httptransport.PaymentResponse{}, err
	}
	return httptransport.PaymentResponse{Status: "success", Data: toPaymentData(payment)}, nil
}

func toCustomerData(customer entities.Customer) httptransport.CustomerData {
	return httptransport.CustomerData{
		CustomerID: customer.CustomerID,
		OwnerID:    customer.OwnerID,
		Name:       customer.Name,
		Email:      customer.Email,
		CreatedAt:  customer.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toSubscriptionData(view ports.SubscriptionView) httptransport.SubscriptionData {
	subscription := view.Subscription
	data := httptransport.SubscriptionData{
		SubscriptionID: subscription.SubscriptionID,
		Status:         string(subscription.Status),
		StartDate:      subscription.StartDate.UTC().Format(dateLayout),
		CreatedAt:      subscription.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      subscription.UpdatedAt.UTC().Format(time.RFC3339),
		Plan: httptransport.PlanData{
			PlanID:       view.Plan.PlanID,
			Name:         view.Plan.Name,
			PriceCents:   view.Plan.PriceCents,
			BillingCycle: string(view.Plan.BillingCycle),
			Active:       view.Plan.Active,
		},
		Customer: toCustomerData(view.Customer),
	}
	if subscription.NextBillingDate != nil {
		data.NextBillingDate = subscription.NextBillingDate.UTC().Format(dateLayout)
	}
	return data
}

func toInvoiceData(invoice entities.Invoice) httptransport.InvoiceData {
	return httptransport.InvoiceData{
		InvoiceID:      invoice.InvoiceID,
		SubscriptionID: invoice.SubscriptionID,
		AmountCents:    invoice.AmountCents,
		Status:         string(invoice.Status),
		IssuedAt:       invoice.IssuedAt.UTC().Format(time.RFC3339),
		DueDate:        invoice.DueDate.UTC().Format(dateLayout),
	}
}

func toPaymentData(payment entities.Payment) httptransport.PaymentData {
	return httptransport.PaymentData{
		PaymentID:   payment.PaymentID,
		InvoiceID:   payment.InvoiceID,
		AmountCents: payment.AmountCents,
		Method:      string(payment.Method),
		Status:      string(payment.Status),
		PaidAt:      payment.PaidAt.UTC().Format(time.RFC3339),
		Reference:   payment.Reference,
	}
}
