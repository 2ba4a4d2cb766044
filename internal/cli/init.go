// Package cli provides the initialization steps of cmd/finman.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"finman/internal/config"
	"finman/internal/log"
)

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. Records go to stderr, leaving stdout to the menu.
func SetupLogger(cfg *config.Config) *log.Logger {
	lc := log.DefaultConfig()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		lc.Level = level
	}
	lc.Format = cfg.LogFormat

	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Validation problems are written to stderr before exiting with status 1,
// since the configured logger cannot be built from an invalid config.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}
