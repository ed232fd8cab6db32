// Package config handles configuration for the CLI client:
// defaults, environment overlay, optional JSON file, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the turmas CLI.
//
// Fields:
//   - ServerURL: base URL of the turmas REST server.
//   - StateFile: path of the persisted session file.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerURL      string
	StateFile      string
	RequestTimeout time.Duration
}

// LoadDefaults populates Config with development defaults. The session file
// goes under the user config directory when one is available, otherwise into
// the working directory.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.StateFile = defaultStateFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultStateFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "turmas", "session.json")
	}
	return ".turmas-session.json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (including a .env file if present), an optional JSON
// file, and finally command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
