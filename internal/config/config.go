// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON config file
// and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address defines the server's listening address (ip:port).
	Address string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// JWTSecret is the HMAC key used to sign and verify identity tokens.
	JWTSecret string

	// TokenTTL is the lifetime of issued identity tokens.
	TokenTTL time.Duration

	// ScrapeTimeout bounds the ingestion pipeline's page fetch.
	ScrapeTimeout time.Duration

	// FrontendURL, when set, is the single origin allowed by CORS.
	FrontendURL string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.JWTSecret, "s", "", "jwt signing secret")
	flag.DurationVar(&options.TokenTTL, "token-ttl", 24*time.Hour, "identity token lifetime")
	flag.DurationVar(&options.ScrapeTimeout, "scrape-timeout", 10*time.Second, "scraper fetch timeout")
	flag.StringVar(&options.FrontendURL, "frontend", "", "allowed CORS origin")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the config file and environment
// variables to set configuration values. Environment variables take
// precedence over the file, which takes precedence over flags. It returns a
// pointer to the Options struct containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		options.JWTSecret = secret
	}
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		options.FrontendURL = frontend
	}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			log.Fatalf("error while parsing TOKEN_TTL: %v", err)
		}
		options.TokenTTL = parsed
	}
	if timeout := os.Getenv("SCRAPE_TIMEOUT_SECONDS"); timeout != "" {
		seconds, err := strconv.Atoi(timeout)
		if err != nil {
			log.Fatalf("error while parsing SCRAPE_TIMEOUT_SECONDS: %v", err)
		}
		options.ScrapeTimeout = time.Duration(seconds) * time.Second
	}

	return options
}
