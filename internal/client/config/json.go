package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/flaviaglenda/turmas/internal/flagx"
	"github.com/flaviaglenda/turmas/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the timeout can be given either as a string like "10s"
// or as integer nanoseconds.
type jsonConfig struct {
	ServerURL      string         `json:"server_url"`
	StateFile      string         `json:"state_file"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. When no flag is given, nothing happens. Read or unmarshal
// errors panic; a misnamed config file should not start the client silently
// misconfigured.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.StateFile != "" {
		cfg.StateFile = jc.StateFile
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
