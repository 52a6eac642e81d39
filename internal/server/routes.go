package server

import (
	"log/slog"
	"net/http"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	// Register routes with method-based patterns (Go 1.22+)
	mux.HandleFunc("GET /health", h.Health)

	// Remote listings
	mux.HandleFunc("GET /jobs/search", h.SearchJobs)
	mux.HandleFunc("GET /jobs/popular", h.PopularJobs)
	mux.HandleFunc("GET /jobs/nearby", h.NearbyJobs)
	mux.HandleFunc("GET /jobs/{id}", h.GetJob)
	mux.HandleFunc("GET /jobs/{id}/share", h.ShareJob)
	mux.HandleFunc("POST /jobs/{id}/save", h.SaveListing)

	// Saved jobs collection
	mux.HandleFunc("GET /saved-jobs", h.ListSavedJobs)
	mux.HandleFunc("POST /saved-jobs", h.SaveJob)
	mux.HandleFunc("PUT /saved-jobs/{id}", h.SaveOrUpdateJob)
	mux.HandleFunc("DELETE /saved-jobs", h.ClearSavedJobs)

	// Apply middleware chain
	chain := ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}
