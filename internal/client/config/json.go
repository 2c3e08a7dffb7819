package config

import (
	"encoding/json"
	"os"

	"github.com/walletdash/walletdash/internal/flagx"
	"github.com/walletdash/walletdash/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify timeouts either as strings like
// "15s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DatabasePath   *string         `json:"database_path"`
	LogLevel       *string         `json:"log_level"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flags. Absent flags mean no file is loaded. Fields missing
// from the file keep their current values. Read or parse errors panic;
// the caller treats a broken config file as unrecoverable.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
