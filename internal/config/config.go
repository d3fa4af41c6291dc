package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values. Everything that was a
// process-wide constant in the legacy deployment (session secret, the API
// login triple) lives here and is injected into the web layer.
type Config struct {
	Secret      string
	DatabaseDSN string
	HTTPPort    string

	// Shared credential triple accepted by POST /api/auth/login.
	APILogin    string
	APIPassword string
	APIDatabase string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}

	port := get("HTTP_PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	return Config{
		Secret:      get("SECRET", "SAG_secret_key_2025"),
		DatabaseDSN: get("DATABASE_DSN", "sagapi_database.db"),
		HTTPPort:    port,
		APILogin:    get("API_LOGIN", "admin"),
		APIPassword: get("API_PASSWORD", "SAGsecure#2025"),
		APIDatabase: get("API_DATABASE", "sag_production"),
	}
}
