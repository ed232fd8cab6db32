package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first, without overriding variables already
// set in the process environment.
//
// Recognized variables:
//
//	TURMAS_SERVER_URL       base URL of the server
//	TURMAS_STATE_FILE       session file path
//	TURMAS_REQUEST_TIMEOUT  Go duration, e.g. "10s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("TURMAS_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("TURMAS_STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
	if v := os.Getenv("TURMAS_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
