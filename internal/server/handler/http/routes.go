package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"chordbook/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// chordbook API. It applies JSON content-type enforcement, request logging
// and bearer-token authentication, and mounts the registration, login,
// song and scrape endpoints.
//
// Routes:
//
//	POST /register    → authHandler.Register
//	POST /login       → authHandler.Login
//	GET  /songs       → songHandler.List
//	GET  /songs/{id}  → songHandler.Get    (auth optional)
//	PUT  /songs/{id}  → songHandler.Update (auth required)
//	POST /scrape      → scrapeHandler.Scrape (auth required)
//
// Middleware chain (applied in order):
//  1. cors.Handler                        — only when frontendURL is set
//  2. AllowContentType("application/json") — rejects non-JSON bodies
//  3. WithRequestLogging(logger)           — logs each request
//  4. Auth(verifier)                       — resolves Bearer-token identity
//
// RequireUser guards the protected group, so a missing identity is 401
// there while GET /songs/{id} stays reachable anonymously.
func NewRouter(
	authHandler *AuthHandler,
	songHandler *SongHandler,
	scrapeHandler *ScrapeHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Restrict cross-origin access to the configured frontend
	if frontendURL != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{frontendURL},
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Resolve identity from the Authorization header, if present
	r.Use(middleware.Auth(verifier))

	// Public endpoints
	r.Post("/register", authHandler.Register)
	r.Post("/login", authHandler.Login)
	r.Get("/songs", songHandler.List)
	r.Get("/songs/{id}", songHandler.Get)

	// Protected group: requires a valid identity token
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Put("/songs/{id}", songHandler.Update)
		r.Post("/scrape", scrapeHandler.Scrape)
	})

	return r
}
