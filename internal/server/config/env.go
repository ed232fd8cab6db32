package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first, without overriding variables already
// set in the process environment.
//
// Recognized variables:
//
//	SERVER_ADDRESS              bind address
//	DATABASE_DSN                PostgreSQL DSN
//	SECRET_KEY                  JWT HMAC secret
//	ACCESS_TOKEN_VALIDITY       Go duration, e.g. "15m"
//	REFRESH_TOKEN_VALIDITY      Go duration, e.g. "720h"
//	REQUIRE_EMAIL_CONFIRMATION  "true"/"false"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AccessTokenValidity = d
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RefreshTokenValidity = d
		}
	}
	if v := os.Getenv("REQUIRE_EMAIL_CONFIRMATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RequireEmailConfirmation = b
		}
	}
}
