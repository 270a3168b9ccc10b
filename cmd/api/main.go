package main

import (
	"context"
	"log/slog"
	"os"

	"billcore/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	app, err := bootstrap.BuildAPI()
	if err != nil {
		slog.Error("api bootstrap failed",
			"event", "bootstrap_api_failed",
			"module", "cmd/api",
			"layer", "platform",
			"error", err,
		)
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	if err := app.Run(context.Background()); err != nil {
		slog.Error("api process exited",
			"event", "api_process_exited",
			"module", "cmd/api",
			"layer", "platform",
			"error", err,
		)
		os.Exit(1)
	}
}
