package config

import (
	"encoding/json"
	"os"

	"github.com/flaviaglenda/turmas/internal/flagx"
	"github.com/flaviaglenda/turmas/internal/timex"
)

// jsonConfig is an intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration so both "15m" strings and integer
// nanoseconds parse. After unmarshalling, non-zero fields are copied into the
// runtime Config.
type jsonConfig struct {
	HTTPAddr                 string         `json:"server_address"`
	DatabaseDSN              string         `json:"database_dsn"`
	SecretKey                string         `json:"secret_key"`
	AccessTokenValidity      timex.Duration `json:"access_token_validity"`
	RefreshTokenValidity     timex.Duration `json:"refresh_token_validity"`
	RequireEmailConfirmation *bool          `json:"require_email_confirmation"`
}

// parseJSON loads configuration values from the JSON file named by the
// -c/-config flags into cfg. When no file is named, nothing happens. A file
// that cannot be read or parsed is a startup error: the function panics.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &jsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != "" {
		cfg.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		cfg.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidity.Duration != 0 {
		cfg.AccessTokenValidity = c.AccessTokenValidity.Duration
	}
	if c.RefreshTokenValidity.Duration != 0 {
		cfg.RefreshTokenValidity = c.RefreshTokenValidity.Duration
	}
	if c.RequireEmailConfirmation != nil {
		cfg.RequireEmailConfirmation = *c.RequireEmailConfirmation
	}
}
