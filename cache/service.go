package cache

import (
	"context"
	"fmt"

	"github.com/impactcrypto/dashboard/config"
)

// Service wraps a Store with the shared service lifecycle
type Service struct {
	*Store
	config config.CacheConfig
}

// NewService creates a cache service from configuration
func NewService(cfg config.CacheConfig) *Service {
	var snapshot *Snapshot
	if cfg.SnapshotPath != "" {
		snapshot = NewSnapshot(cfg.SnapshotPath)
	}

	return &Service{
		Store:  NewStore(snapshot),
		config: cfg,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.Store == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	// Entries are flushed to the snapshot on every write; nothing to do
}
