// Command purge runs a single purge pass and exits. Use it from an external
// scheduler (cron, systemd timer) instead of the server's built-in daily
// timer; the two are interchangeable.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/filedrive/filedrive/internal/app"
	"github.com/filedrive/filedrive/internal/config"
	"github.com/filedrive/filedrive/internal/logger"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	purged, err := app.PurgeService.PurgeExpired(context.Background())
	if err != nil {
		slog.Error("purge failed", "error", err)
		os.Exit(1)
	}

	slog.Info("purge finished", "purged", purged)
}
