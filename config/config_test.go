package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 2, cfg.Fetch.MaxRetries)
	assert.Equal(t, 350*time.Millisecond, cfg.Fetch.BaseBackoff)
	assert.Len(t, cfg.Fetch.ProxyPrefixes, 2)
	assert.Equal(t, 60*time.Second, cfg.Coingecko.MarketsTTL)
	assert.Equal(t, 10*time.Minute, cfg.Coingecko.ChartTTL)
	assert.Equal(t, 30*time.Minute, cfg.FxRate.RateTTL)
	assert.Equal(t, 24*time.Hour, cfg.FxRate.SymbolsTTL)
	assert.Equal(t, 2*time.Minute, cfg.Poller.BaseInterval)
	assert.Equal(t, 5*time.Minute, cfg.Poller.MaxInterval)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
coingecko:
  base_url: "http://localhost:8081/api/v3"
poller:
  page_size: 50
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "http://localhost:8081/api/v3", cfg.Coingecko.BaseURL)
	assert.Equal(t, 50, cfg.Poller.PageSize)

	// Untouched values keep their defaults
	assert.Equal(t, 2, cfg.Fetch.MaxRetries)
	assert.Equal(t, DefaultFxRateConfig().PrimaryURL, cfg.FxRate.PrimaryURL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	t.Setenv("OVERRIDE_COINGECKO_URL", "http://127.0.0.1:9999")
	t.Setenv("OVERRIDE_FX_PRIMARY_URL", "http://127.0.0.1:9998")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.Coingecko.BaseURL)
	assert.Equal(t, "http://127.0.0.1:9998", cfg.FxRate.PrimaryURL)
	assert.Equal(t, DefaultFxRateConfig().SecondaryURL, cfg.FxRate.SecondaryURL)
}
