// Package main initializes and starts the chordbook HTTP server, setting up
// configuration, logging, the database connection, repositories, services
// and handlers.
package main

import (
	"cmp"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"chordbook/internal/config"
	"chordbook/internal/db"
	"chordbook/internal/logger"
	"chordbook/internal/repository"
	"chordbook/internal/scrape"
	"chordbook/internal/server/handler/http"
	"chordbook/internal/service"
	"chordbook/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load a .env file if present, then parse configuration.
	_ = godotenv.Load()
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET_KEY must be set")
	}

	// Initialize PostgreSQL connection and bootstrap the schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	songRepo := repository.NewPostgresSongRepository(postgresDB)
	userSongRepo := repository.NewPostgresUserSongRepository(postgresDB)

	// Identity tokens.
	jwt := token.NewJWT(options.JWTSecret, options.TokenTTL)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, jwt)
	songService := service.NewSongService(songRepo, userSongRepo)
	scraper := scrape.NewScraper(songRepo, scrape.PageExtractor{}, options.ScrapeTimeout)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	songHandler := &http.SongHandler{SongService: songService}
	scrapeHandler := &http.ScrapeHandler{ScrapeService: scraper}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, songHandler, scrapeHandler, jwt, zapLogger, options.FrontendURL)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:              options.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
