package routes

import (
	"net/http"

	"github.com/filedrive/filedrive/internal/app"
	"github.com/filedrive/filedrive/internal/handler"
	"github.com/filedrive/filedrive/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	file := handler.NewFileHandler(app.FileService)
	favorite := handler.NewFavoriteHandler(app.FavoriteService)
	webhook := handler.NewWebhookHandler(app.UserService, app.Cfg.IdentityWebhookSecret)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /health", health.Health)

	// Files
	uploadLimiter := middleware.RateLimitUploads()
	mux.HandleFunc("POST /api/files/upload-url", uploadLimiter(file.GenerateUploadURL))
	mux.HandleFunc("POST /api/files", file.Create)
	mux.HandleFunc("GET /api/files", file.List)
	mux.HandleFunc("POST /api/files/{id}/trash", file.Trash)
	mux.HandleFunc("POST /api/files/{id}/restore", file.Restore)

	// Favorites
	mux.HandleFunc("POST /api/files/{id}/favorite", favorite.Toggle)
	mux.HandleFunc("GET /api/favorites", favorite.List)

	// Webhooks
	mux.HandleFunc("POST /webhooks/identity", webhook.Identity)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Auth(app.Cfg.JWTSecret),
	)
}
