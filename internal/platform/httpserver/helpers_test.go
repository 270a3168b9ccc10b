package httpserver

import (
	"log/slog"

	billing "billcore/contexts/billing/billing-service"
	plancatalog "billcore/contexts/catalog/plan-service"
)

func newTestServer() *Server {
	logger := slog.Default()
	return New(
		billing.NewInMemoryModule(logger),
		plancatalog.NewInMemoryModule(logger),
		logger,
		":0",
	)
}
