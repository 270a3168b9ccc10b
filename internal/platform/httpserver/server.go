package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	billing "billcore/contexts/billing/billing-service"
	plancatalog "billcore/contexts/catalog/plan-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "billcore/internal/platform/httpserver/docs"
)

type Server struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	addr    string
	billing billing.Module
	catalog plancatalog.Module
}

func New(
	billingModule billing.Module,
	catalogModule plancatalog.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		billing: billingModule,
		catalog: catalogModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/plans", s.handleCreatePlan)
	s.mux.HandleFunc("GET /api/plans", s.handleListPlans)
	s.mux.HandleFunc("GET /api/plans/{plan_id}", s.handleGetPlan)
	s.mux.HandleFunc("PUT /api/plans/{plan_id}", s.handleUpdatePlan)
	s.mux.HandleFunc("DELETE /api/plans/{plan_id}", s.handleDeletePlan)

	s.mux.HandleFunc("POST /api/customers", s.handleCreateCustomer)
	s.mux.HandleFunc("GET /api/customers", s.handleListCustomers)
	s.mux.HandleFunc("GET /api/customers/me", s.handleGetMyCustomer)
	s.mux.HandleFunc("GET /api/customers/{customer_id}", s.handleGetCustomer)
	s.mux.HandleFunc("GET /api/customers/{customer_id}/subscriptions", s.handleListCustomerSubscriptions)

	s.mux.HandleFunc("POST /api/subscriptions", s.handleCreateSubscription)
	s.mux.HandleFunc("GET /api/subscriptions", s.handleListSubscriptions)
	s.mux.HandleFunc("PUT /api/subscriptions/{subscription_id}", s.handleUpdateSubscription)
	s.mux.HandleFunc("POST /api/subscriptions/{subscription_id}/renew", s.handleRenewSubscription)

	s.mux.HandleFunc("GET /api/invoices", s.handleListInvoices)
	s.mux.HandleFunc("GET /api/invoices/{invoice_id}", s.handleGetInvoice)
	s.mux.HandleFunc("POST /api/invoices/{invoice_id}/pay", s.handlePayInvoice)

	s.mux.HandleFunc("GET /api/payments", s.handleListPayments)
	s.mux.HandleFunc("GET /api/payments/{payment_id}", s.handleGetPayment)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
