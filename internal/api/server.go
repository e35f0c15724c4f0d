package api

import (
	"net/http"
	"time"

	aiapi "github.com/dailysync/standup-backend/internal/api/ai"
	"github.com/dailysync/standup-backend/internal/api/docs"
	"github.com/dailysync/standup-backend/internal/api/middleware"
	settingsapi "github.com/dailysync/standup-backend/internal/api/settings"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	aiHandler *aiapi.Handler,
	settingsHandler *settingsapi.Handler,
	resolver middleware.PrincipalResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Authenticated API routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(resolver))

		aiapi.RegisterRoutes(r, aiHandler)
		settingsapi.RegisterRoutes(r, settingsHandler)
	})

	return r
}
