// Package config loads runtime settings for the walletdash CLI. Sources are
// layered: built-in defaults, then environment variables, then an optional
// JSON file, then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the walletdash CLI.
//
// Fields:
//   - APIBaseURL: base URL of the wallet service, e.g. http://localhost:8000.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: sqlite file holding persisted client state.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	APIBaseURL     string        `envconfig:"WALLETDASH_API_URL"`
	RequestTimeout time.Duration `envconfig:"WALLETDASH_REQUEST_TIMEOUT"`
	DatabasePath   string        `envconfig:"WALLETDASH_DB_PATH"`
	LogLevel       string        `envconfig:"WALLETDASH_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "walletdash.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
