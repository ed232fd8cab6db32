package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_address":             "www.example:9000",
		"database_dsn":               "postgres://example/turmas",
		"secret_key":                 "my_secret_key",
		"access_token_validity":      "1m",
		"refresh_token_validity":     "3h",
		"require_email_confirmation": true,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJSON(cfg)

		assert.Equal(t, "www.example:9000", cfg.HTTPAddr)
		assert.Equal(t, "postgres://example/turmas", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 1*time.Minute, cfg.AccessTokenValidity)
		assert.Equal(t, 3*time.Hour, cfg.RefreshTokenValidity)
		assert.True(t, cfg.RequireEmailConfirmation)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			HTTPAddr:             "defaults:1234",
			DatabaseDSN:          "postgres://defaults/turmas",
			SecretKey:            "key",
			AccessTokenValidity:  2 * time.Minute,
			RefreshTokenValidity: 3 * time.Hour,
		}
		parseJSON(cfg)

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "postgres://defaults/turmas", cfg.DatabaseDSN)
		assert.Equal(t, "key", cfg.SecretKey)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidity)
		assert.Equal(t, 3*time.Hour, cfg.RefreshTokenValidity)
	})

	t.Run("partial file overrides only named fields", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"secret_key": "other_key",
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{
			HTTPAddr:  "defaults:1234",
			SecretKey: "key",
		}
		parseJSON(cfg)

		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
		assert.Equal(t, "other_key", cfg.SecretKey)
	})
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", ":9090", "-d", "postgres://flags/turmas", "-s", "flagsecret", "-t", "30", "-r", "48"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "postgres://flags/turmas", cfg.DatabaseDSN)
	assert.Equal(t, "flagsecret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidity)
	assert.Equal(t, 48*time.Hour, cfg.RefreshTokenValidity)
}

func Test_parseEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("SECRET_KEY", "envsecret")
	t.Setenv("ACCESS_TOKEN_VALIDITY", "5m")
	t.Setenv("REQUIRE_EMAIL_CONFIRMATION", "true")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "envsecret", cfg.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidity)
	assert.True(t, cfg.RequireEmailConfirmation)
}
