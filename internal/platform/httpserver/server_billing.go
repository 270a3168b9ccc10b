package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	billingerrors "billcore/contexts/billing/billing-service/domain/errors"
	billinghttp "billcore/contexts/billing/billing-service/transport/http"
	accesspolicy "billcore/contexts/identity-access/access-policy"
)

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req billinghttp.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBillingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.billing.Handler.CreateCustomerHandler(
		r.Context(),
		resolveIdentity(r),
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.ListCustomersHandler(r.Context(), resolveIdentity(r))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMyCustomer(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.GetMyCustomerHandler(r.Context(), resolveIdentity(r))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.GetCustomerHandler(r.Context(), resolveIdentity(r), r.PathValue("customer_id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req billinghttp.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBillingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.billing.Handler.CreateSubscriptionHandler(
		r.Context(),
		resolveIdentity(r),
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.ListSubscriptionsHandler(r.Context(), resolveIdentity(r), "")
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListCustomerSubscriptions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.ListSubscriptionsHandler(
		r.Context(),
		resolveIdentity(r),
		r.PathValue("customer_id"),
	)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var req billinghttp.UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBillingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.billing.Handler.UpdateSubscriptionHandler(
		r.Context(),
		resolveIdentity(r),
		r.Header.Get("Idempotency-Key"),
		r.PathValue("subscription_id"),
		req,
	)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRenewSubscription(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.RenewSubscriptionHandler(
		r.Context(),
		resolveIdentity(r),
		r.Header.Get("Idempotency-Key"),
		r.PathValue("subscription_id"),
	)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.ListInvoicesHandler(r.Context(), resolveIdentity(r), "")
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.GetInvoiceHandler(r.Context(), resolveIdentity(r), r.PathValue("invoice_id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePayInvoice(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.PayInvoiceHandler(
		r.Context(),
		resolveIdentity(r),
		r.Header.Get("Idempotency-Key"),
		r.PathValue("invoice_id"),
	)
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.ListPaymentsHandler(r.Context(), resolveIdentity(r), "")
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.billing.Handler.GetPaymentHandler(r.Context(), resolveIdentity(r), r.PathValue("payment_id"))
	if err != nil {
		writeBillingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeBillingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accesspolicy.ErrUnauthenticated):
		writeBillingError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, accesspolicy.ErrPermissionDenied):
		writeBillingError(w, http.StatusForbidden, "permission_denied", err.Error())
	case errors.Is(err, billingerrors.ErrCustomerNotFound),
		errors.Is(err, billingerrors.ErrPlanNotFound),
		errors.Is(err, billingerrors.ErrSubscriptionNotFound),
		errors.Is(err, billingerrors.ErrInvoiceNotFound),
		errors.Is(err, billingerrors.ErrPaymentNotFound):
		writeBillingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, billingerrors.ErrCustomerConflict),
		errors.Is(err, billingerrors.ErrPlanInactive),
		errors.Is(err, billingerrors.ErrInvalidStatus),
		errors.Is(err, billingerrors.ErrIdempotencyConflict):
		writeBillingError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, billingerrors.ErrIdempotencyKeyRequired):
		writeBillingError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, billingerrors.ErrInvalidRequest),
		errors.Is(err, billingerrors.ErrInvalidBillingCycle):
		writeBillingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeBillingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBillingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, billinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
