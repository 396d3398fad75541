package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/filedrive/filedrive/internal/app"
	"github.com/filedrive/filedrive/internal/config"
	"github.com/filedrive/filedrive/internal/logger"
	"github.com/filedrive/filedrive/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	// Daily purge of expired soft-deleted files
	if cfg.RunPurgeInProc {
		go app.PurgeService.RunDaily(context.Background(), cfg.PurgeHourUTC, cfg.PurgeMinuteUTC)
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
