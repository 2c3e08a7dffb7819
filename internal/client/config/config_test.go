package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, "walletdash.db", cfg.DatabasePath)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("WALLETDASH_API_URL", "http://example.org:9000")
	t.Setenv("WALLETDASH_REQUEST_TIMEOUT", "30s")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	require.Equal(t, "http://example.org:9000", cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	// Untouched fields keep their defaults.
	require.Equal(t, "walletdash.db", cfg.DatabasePath)
}

func TestParseJSON_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	payload := `{"api_base_url":"http://json:8000","request_timeout":"45s"}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	oldArgs := os.Args
	os.Args = []string{"walletdash", "-c", path}
	t.Cleanup(func() { os.Args = oldArgs })

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	require.Equal(t, "http://json:8000", cfg.APIBaseURL)
	require.Equal(t, 45*time.Second, cfg.RequestTimeout)
	require.Equal(t, "walletdash.db", cfg.DatabasePath)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"walletdash", "-a", "http://flag:8000", "-t", "5"}
	t.Cleanup(func() { os.Args = oldArgs })

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	require.Equal(t, "http://flag:8000", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_LaterLayersWin(t *testing.T) {
	t.Setenv("WALLETDASH_API_URL", "http://env:8000")

	oldArgs := os.Args
	os.Args = []string{"walletdash", "-a", "http://flag:8000"}
	t.Cleanup(func() { os.Args = oldArgs })

	cfg := LoadConfig()
	require.Equal(t, "http://flag:8000", cfg.APIBaseURL)
}
