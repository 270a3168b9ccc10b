// Package billing implements the subscription and billing lifecycle service
// inside billcore.
//
// Layering:
// - domain: customer, subscription, invoice, payment entities; the billing
//   calendar and settlement advancement rules; sentinel errors
// - application: lifecycle and settlement use cases behind explicit ports,
//   with idempotency-key replay on every mutation
// - ports: persistence, plan projection, and payment processor boundaries
// - adapters: memory, postgres, payment gateway, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
package billing

import (
	"log/slog"
	"time"

	"billcore/contexts/billing/billing-service/adapters/gateway"
	httpadapter "billcore/contexts/billing/billing-service/adapters/http"
	"billcore/contexts/billing/billing-service/adapters/memory"
	"billcore/contexts/billing/billing-service/application"
	"billcore/contexts/billing/billing-service/ports"
)

// Module is the billing-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository     ports.Repository
	PlanCatalog    ports.PlanCatalog
	Processor      ports.PaymentProcessor
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	Logger         *slog.Logger
	IdempotencyTTL time.Duration
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:           deps.Repository,
		Plans:          deps.PlanCatalog,
		Processor:      deps.Processor,
		Idempotency:    deps.Idempotency,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGenerator,
		Logger:         deps.Logger,
		IdempotencyTTL: deps.IdempotencyTTL,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and the always-succeeding card gateway stub.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		PlanCatalog: store,
		Processor:   gateway.StubProcessor{IDGenerator: store},
		Idempotency: store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
