package config

import "time"

// PollerConfig defines the adaptive cadence of the market list poller
type PollerConfig struct {
	// BaseInterval is the poll interval while fetches succeed
	BaseInterval time.Duration `yaml:"base_interval"`

	// MaxInterval caps the interval after consecutive failures; the
	// interval doubles on each failure and resets on success
	MaxInterval time.Duration `yaml:"max_interval"`

	// PageSize is the number of coins requested per poll
	PageSize int `yaml:"page_size"`
}

// DefaultPollerConfig returns default poller configuration
func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		BaseInterval: 2 * time.Minute,
		MaxInterval:  5 * time.Minute,
		PageSize:     200,
	}
}
