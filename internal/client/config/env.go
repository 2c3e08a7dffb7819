package config

import "github.com/kelseyhightower/envconfig"

// parseEnv overlays Config with values from WALLETDASH_* environment
// variables. Unset variables leave the current values untouched.
func parseEnv(cfg *Config) {
	if err := envconfig.Process("", cfg); err != nil {
		panic(err)
	}
}
