// Package plancatalog implements the plan catalog service inside billcore.
//
// Layering:
// - domain: plan entity, billing-cycle value set, errors
// - application: admin CRUD and authenticated reads using explicit ports
// - ports: stable persistence boundary
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
package plancatalog

import (
	"log/slog"

	httpadapter "billcore/contexts/catalog/plan-service/adapters/http"
	"billcore/contexts/catalog/plan-service/adapters/memory"
	"billcore/contexts/catalog/plan-service/application"
	"billcore/contexts/catalog/plan-service/ports"
)

// Module is the plan-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

// Dependencies captures all runtime ports required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:        deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
