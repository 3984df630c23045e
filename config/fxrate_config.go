package config

import "time"

// FxRateConfig defines configuration for the currency rate client
type FxRateConfig struct {
	// PrimaryURL is the base URL of the primary rate provider, which
	// serves latest, historical and symbol-list endpoints
	PrimaryURL string `yaml:"primary_url"`

	// SecondaryURL is the base URL of the fallback provider; it only
	// serves a "latest" endpoint, so historical lookups have no fallback
	SecondaryURL string `yaml:"secondary_url"`

	// RateTTL is the cache TTL for latest and historical rate lookups.
	// The primary provider publishes roughly once per day, so half an
	// hour keeps conversions responsive without hammering the CDN.
	RateTTL time.Duration `yaml:"rate_ttl"`

	// SymbolsTTL is the cache TTL for the supported-currency list
	SymbolsTTL time.Duration `yaml:"symbols_ttl"`
}

// DefaultFxRateConfig returns default FX rate configuration
func DefaultFxRateConfig() FxRateConfig {
	return FxRateConfig{
		PrimaryURL:   "https://cdn.jsdelivr.net/gh/fawazahmed0/exchange-api@1",
		SecondaryURL: "https://open.er-api.com",
		RateTTL:      30 * time.Minute,
		SymbolsTTL:   24 * time.Hour,
	}
}
