package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Config aggregates configuration for all dashboard services
type Config struct {
	Fetch     FetchConfig     `yaml:"fetch"`
	Coingecko CoingeckoConfig `yaml:"coingecko"`
	FxRate    FxRateConfig    `yaml:"fx_rate"`
	Poller    PollerConfig    `yaml:"poller"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`

	// StatePath is the file holding persisted UI state (favorites,
	// selected fiat, day range, theme, language)
	StatePath string `yaml:"state_path"`
}

// CacheConfig configures the persistent cache
type CacheConfig struct {
	// SnapshotPath is the file the cache is mirrored to; empty disables
	// durability and keeps the cache memory-only
	SnapshotPath string `yaml:"snapshot_path"`
}

// MetricsConfig configures optional Prometheus exposition
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    string `yaml:"port"`
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Fetch:     DefaultFetchConfig(),
		Coingecko: DefaultCoingeckoConfig(),
		FxRate:    DefaultFxRateConfig(),
		Poller:    DefaultPollerConfig(),
		Cache:     CacheConfig{SnapshotPath: "dashboard-cache.json"},
		Metrics:   MetricsConfig{Enabled: false, Port: "9090"},
		StatePath: "dashboard-state.json",
	}
}

// LoadConfig reads configuration from a yaml file, falling back to
// defaults for anything the file does not set. Environment variables
// can override upstream provider URLs for testing against mock servers.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	config.applyEnvOverrides()
	return config, nil
}

// applyEnvOverrides replaces provider base URLs from the environment.
// Used by integration tests and by deployments behind URL rewriters.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OVERRIDE_COINGECKO_URL"); v != "" {
		log.Printf("Config: overriding CoinGecko base URL with %s", v)
		c.Coingecko.BaseURL = v
	}
	if v := os.Getenv("OVERRIDE_FX_PRIMARY_URL"); v != "" {
		log.Printf("Config: overriding FX primary base URL with %s", v)
		c.FxRate.PrimaryURL = v
	}
	if v := os.Getenv("OVERRIDE_FX_SECONDARY_URL"); v != "" {
		log.Printf("Config: overriding FX secondary base URL with %s", v)
		c.FxRate.SecondaryURL = v
	}
}
