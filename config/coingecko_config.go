package config

import "time"

// CoingeckoConfig defines configuration for the market data client
type CoingeckoConfig struct {
	// BaseURL is the CoinGecko API root
	BaseURL string `yaml:"base_url"`

	// MarketsTTL is the cache TTL for coin list responses
	MarketsTTL time.Duration `yaml:"markets_ttl"`

	// ChartTTL is the cache TTL for per-coin historical chart responses
	ChartTTL time.Duration `yaml:"chart_ttl"`
}

// DefaultCoingeckoConfig returns default market data configuration
func DefaultCoingeckoConfig() CoingeckoConfig {
	return CoingeckoConfig{
		BaseURL:    "https://api.coingecko.com/api/v3",
		MarketsTTL: 60 * time.Second,
		ChartTTL:   10 * time.Minute,
	}
}
