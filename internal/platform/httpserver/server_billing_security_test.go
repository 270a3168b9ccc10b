package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	billinghttp "billcore/contexts/billing/billing-service/transport/http"
)

func TestSubscriptionCreateRequiresIdentity(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"plan_id":"plan_starter_monthly"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "idem-sub-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubscriptionCreateRequiresIdempotencyKey(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"plan_id":"plan_starter_monthly"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSubscriptionCreateSuccess(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"plan_id":"plan_starter_monthly"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/subscriptions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-User-Name", "Ada")
	req.Header.Set("X-User-Email", "ada@example.com")
	req.Header.Set("Idempotency-Key", "idem-sub-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp billinghttp.SubscriptionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Status != "ACTIVE" || resp.Data.NextBillingDate == "" {
		t.Fatalf("unexpected subscription payload: %+v", resp.Data)
	}
}

func TestSubscriptionUpdateRejectsUnknownStatus(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"status":"PAUSED"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/subscriptions/sub_1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("Idempotency-Key", "idem-upd-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestInvoiceReadDeniedForStrangers(t *testing.T) {
	server := newTestServer()

	create := httptest.NewRequest(http.MethodPost, "/api/subscriptions",
		bytes.NewReader([]byte(`{"plan_id":"plan_starter_monthly"}`)))
	create.Header.Set("Content-Type", "application/json")
	create.Header.Set("X-User-Id", "user-1")
	create.Header.Set("X-User-Email", "ada@example.com")
	create.Header.Set("Idempotency-Key", "idem-sub-1")
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, create)
	if rr.Code != http.StatusCreated {
		t.Fatalf("setup create failed: %d body=%s", rr.Code, rr.Body.String())
	}

	list := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	list.Header.Set("X-User-Id", "user-1")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, list)
	var invoices billinghttp.ListInvoicesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &invoices); err != nil || len(invoices.Data) != 1 {
		t.Fatalf("expected one invoice, got %s (err=%v)", rr.Body.String(), err)
	}

	read := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoices.Data[0].InvoiceID, nil)
	read.Header.Set("X-User-Id", "user-2")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, read)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	asAdmin := httptest.NewRequest(http.MethodGet, "/api/invoices/"+invoices.Data[0].InvoiceID, nil)
	asAdmin.Header.Set("X-User-Id", "admin-1")
	asAdmin.Header.Set("X-User-Role", "admin")
	rr = httptest.NewRecorder()
	server.mux.ServeHTTP(rr, asAdmin)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCustomerListRequiresAdmin(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("X-User-Id", "user-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPayUnknownInvoiceNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/invoices/inv_ghost/pay", nil)
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("Idempotency-Key", "idem-pay-1")

	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
