package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	billing "billcore/contexts/billing/billing-service"
	"billcore/contexts/billing/billing-service/adapters/gateway"
	billingpostgres "billcore/contexts/billing/billing-service/adapters/postgres"
	plancatalog "billcore/contexts/catalog/plan-service"
	catalogpostgres "billcore/contexts/catalog/plan-service/adapters/postgres"
	"billcore/internal/platform/config"
	"billcore/internal/platform/db"
	"billcore/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	catalogModule := plancatalog.NewModule(plancatalog.Dependencies{
		Repository:  catalogRepo,
		Clock:       catalogpostgres.SystemClock{},
		IDGenerator: catalogpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	billingRepo := billingpostgres.NewRepository(pg.DB, logger)
	billingModule := billing.NewModule(billing.Dependencies{
		Repository:     billingRepo,
		PlanCatalog:    billingRepo,
		Processor:      gateway.StubProcessor{IDGenerator: billingpostgres.UUIDGenerator{}},
		Idempotency:    billingRepo,
		Clock:          billingpostgres.SystemClock{},
		IDGenerator:    billingpostgres.UUIDGenerator{},
		IdempotencyTTL: cfg.IdempotencyTTL,
		Logger:         logger,
	})

	server := httpserver.New(billingModule, catalogModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
